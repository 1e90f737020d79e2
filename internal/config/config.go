// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Data describes the bar source the cmds feed into the pipeline. When BarsDir
// is set, bars load from <bars_dir>/<symbol>.json; otherwise the synthetic
// generator runs.
type Data struct {
	Symbols       []string `yaml:"symbols"`
	BarsDir       string   `yaml:"bars_dir"`
	SyntheticBars int      `yaml:"synthetic_bars"`
	Seed          int64    `yaml:"seed"`
}

// BandFollow parameterizes the ATR-band trend follower.
type BandFollow struct {
	ATRPeriod  int     `yaml:"atr_period"`
	Multiplier float64 `yaml:"multiplier"`
}

// AdaptiveBand parameterizes the smoothed band follower.
type AdaptiveBand struct {
	ATRPeriod   int     `yaml:"atr_period"`
	Multiplier  float64 `yaml:"multiplier"`
	AlphaPeriod int     `yaml:"alpha_period"`
}

// Cloud parameterizes the Ichimoku engine windows.
type Cloud struct {
	TenkanPeriod  int `yaml:"tenkan_period"`
	KijunPeriod   int `yaml:"kijun_period"`
	SenkouBPeriod int `yaml:"senkou_b_period"`
}

// Breakout parameterizes the Donchian channel engine.
type Breakout struct {
	EntryPeriod int `yaml:"entry_period"`
	ExitPeriod  int `yaml:"exit_period"`
}

// Composite parameterizes the three-vote engine.
type Composite struct {
	RSIPeriod        int `yaml:"rsi_period"`
	SmoothPeriod     int `yaml:"smooth_period"`
	ChannelPeriod    int `yaml:"channel_period"`
	OscillatorPeriod int `yaml:"oscillator_period"`
}

// MeanRev parameterizes the mean-reversion engine and its trend gate.
type MeanRev struct {
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought"`
	BandPeriod    int     `yaml:"band_period"`
	BandStdDev    float64 `yaml:"band_std_dev"`
	ADXPeriod     int     `yaml:"adx_period"`
	ADXThreshold  float64 `yaml:"adx_threshold"`
}

// Crossover parameterizes the dual-EMA/MACD engine.
type Crossover struct {
	EMAFast    int `yaml:"ema_fast"`
	EMASlow    int `yaml:"ema_slow"`
	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`
}

// Engines groups the per-engine parameter bundles.
type Engines struct {
	BandFollow   BandFollow   `yaml:"band_follow"`
	AdaptiveBand AdaptiveBand `yaml:"adaptive_band"`
	Cloud        Cloud        `yaml:"cloud"`
	Breakout     Breakout     `yaml:"breakout"`
	Composite    Composite    `yaml:"composite"`
	MeanRev      MeanRev      `yaml:"mean_rev"`
	Crossover    Crossover    `yaml:"crossover"`
}

// Aggregation tunes the consensus reduction over the engine fan-out.
type Aggregation struct {
	MinConfidence   float64 `yaml:"min_confidence"`
	EngineTimeoutMs int     `yaml:"engine_timeout_ms"`
	StopLossPct     float64 `yaml:"stop_loss_pct"`
	TakeProfitMult  float64 `yaml:"take_profit_mult"`
}

// EngineTimeout converts the configured per-engine timeout to a duration.
func (a Aggregation) EngineTimeout() time.Duration {
	return time.Duration(a.EngineTimeoutMs) * time.Millisecond
}

// Backtest tunes the walk-forward simulation.
type Backtest struct {
	InitialCapital float64 `yaml:"initial_capital"`
	CommissionRate float64 `yaml:"commission_rate"`
	WindowSize     int     `yaml:"window_size"`
	StepSize       int     `yaml:"step_size"`
	MinHoldingDays int     `yaml:"min_holding_days"`
	TradesPath     string  `yaml:"trades_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App         App         `yaml:"app"`
	Data        Data        `yaml:"data"`
	Engines     Engines     `yaml:"engines"`
	Aggregation Aggregation `yaml:"aggregation"`
	Backtest    Backtest    `yaml:"backtest"`
}

// Default returns the parameterization the suite ships with; Load overlays a
// YAML file on top of it.
func Default() *Config {
	return &Config{
		App: App{Name: "tradingsuite", Env: "dev", MetricsAddr: ":9100", LogLevel: "info"},
		Data: Data{
			Symbols:       []string{"XAUUSD=X", "EURUSD=X", "BTC-USD"},
			SyntheticBars: 600,
			Seed:          42,
		},
		Engines: Engines{
			BandFollow:   BandFollow{ATRPeriod: 10, Multiplier: 3.0},
			AdaptiveBand: AdaptiveBand{ATRPeriod: 14, Multiplier: 2.0, AlphaPeriod: 21},
			Cloud:        Cloud{TenkanPeriod: 9, KijunPeriod: 26, SenkouBPeriod: 52},
			Breakout:     Breakout{EntryPeriod: 20, ExitPeriod: 10},
			Composite:    Composite{RSIPeriod: 14, SmoothPeriod: 5, ChannelPeriod: 10, OscillatorPeriod: 20},
			MeanRev: MeanRev{
				RSIPeriod: 14, RSIOversold: 30, RSIOverbought: 70,
				BandPeriod: 20, BandStdDev: 2.0,
				ADXPeriod: 14, ADXThreshold: 25,
			},
			Crossover: Crossover{EMAFast: 50, EMASlow: 200, MACDFast: 12, MACDSlow: 26, MACDSignal: 9},
		},
		Aggregation: Aggregation{
			MinConfidence:   0.7,
			EngineTimeoutMs: 30_000,
			StopLossPct:     0.025,
			TakeProfitMult:  1.5,
		},
		Backtest: Backtest{
			InitialCapital: 100_000,
			CommissionRate: 0.001,
			WindowSize:     252,
			StepSize:       21,
			MinHoldingDays: 7,
		},
	}
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
