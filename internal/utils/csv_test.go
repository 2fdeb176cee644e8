package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cryptoJournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTradesCSV(t *testing.T) {
	exitPrice := 60000.0
	reason := domain.CloseReasonTakeProfit
	closeDate := time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC)

	trades := []*domain.Trade{
		{
			ID: 1, Coin: "BTC", TradeType: domain.Long, Status: domain.StatusClosed,
			EntryPrice: 50000, ExitPrice: &exitPrice, Quantity: 0.02, PositionSize: 1000,
			Leverage: 10, Exchange: "Binance", CloseReason: &reason,
			TradeDate: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
			CloseDate: &closeDate, Notes: "breakout",
		},
		{
			ID: 2, Coin: "ETH", TradeType: domain.Short, Status: domain.StatusOpen,
			EntryPrice: 3000, PositionSize: 500, Leverage: 5,
			TradeDate: time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTradesCSV(&buf, trades))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,coin,type,status,entry_price,exit_price,quantity,position_size,leverage,exchange,close_reason,trade_date,close_date,notes", lines[0])
	assert.Contains(t, lines[1], "1,BTC,LONG,CLOSED,50000,60000")
	assert.Contains(t, lines[1], "TP_HIT")
	assert.Contains(t, lines[2], "2,ETH,SHORT,OPEN,3000,")
}

func TestWriteTradesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTradesCSV(&buf, nil))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(buf.String()), "\n")+1)
}
