package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REGION", "")
	t.Setenv("TXN_TABLE_NAME", "transactions")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("REPORTS_OUTPUT_DIR", "")

	cfg := Load()

	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q, want gemini-1.5-flash", cfg.GeminiModel)
	}
	if cfg.OutputDir != "/tmp/reports" {
		t.Errorf("OutputDir = %q, want /tmp/reports", cfg.OutputDir)
	}
	if cfg.TxnTableName != "transactions" {
		t.Errorf("TxnTableName = %q, want transactions", cfg.TxnTableName)
	}
}

func TestValidateIngest(t *testing.T) {
	cfg := &Config{TxnTableName: "t", TxnEmailsBucket: "b", GeminiAPIKey: "k"}
	if err := cfg.ValidateIngest(); err != nil {
		t.Errorf("ValidateIngest() = %v, want nil", err)
	}

	cfg = &Config{TxnTableName: "t"}
	err := cfg.ValidateIngest()
	if err == nil {
		t.Fatal("ValidateIngest() = nil, want error for missing bucket and API key")
	}
}

func TestValidateReport(t *testing.T) {
	cfg := &Config{TxnTableName: "t"}
	if err := cfg.ValidateReport(); err != nil {
		t.Errorf("ValidateReport() = %v, want nil", err)
	}
	cfg = &Config{}
	if err := cfg.ValidateReport(); err == nil {
		t.Error("ValidateReport() = nil, want error for missing table name")
	}
}
