package backtest

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/luxapientia/TradingSuite/internal/signal"
)

func TestJSONLRecorder(t *testing.T) {
	path := t.TempDir() + "/trades.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	trade := Trade{
		Symbol:     "BTC-USD",
		Side:       signal.Long,
		EntryDate:  time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		ExitDate:   time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		ExitPrice:  110,
		Size:       800,
		PnL:        7832,
		Commission: 168,
		DaysHeld:   7,
	}
	recorder.Record(trade)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded Trade
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.Symbol != trade.Symbol || decoded.Side != trade.Side || decoded.PnL != trade.PnL {
		t.Fatalf("unexpected decoded trade: %+v", decoded)
	}
}

func TestJSONLRecorderCloseIdempotent(t *testing.T) {
	recorder, err := NewJSONLRecorder(t.TempDir() + "/trades.jsonl")
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("second Close must be a no-op, got %v", err)
	}
}
