package config

func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			URL:            "http://127.0.0.1:5000",
			TimeoutSeconds: 10,
		},
		Poll: PollConfig{
			IntervalSeconds: 2,
			TimeoutSeconds:  900,
		},
		UI: UIConfig{
			ScrapeMessage: "Updating files...",
			ReportMessage: "Uploading to Google Drive and sending email…",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
