package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "timbang-test")
	t.Setenv("PRINTER_TYPE", "network")
	t.Setenv("PRINTER_ADDRESS", "10.0.0.5:9100")
	t.Setenv("RECEIPT_PDF_TIMEOUT_SECONDS", "12")
	t.Setenv("ADMIN_USERNAME", "operator")

	cfg := Load()

	if cfg.App.Name != "timbang-test" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Printer.Type != "network" || cfg.Printer.Address != "10.0.0.5:9100" {
		t.Errorf("Printer = %+v", cfg.Printer)
	}
	if cfg.Receipt.PDFTimeout != 12*time.Second {
		t.Errorf("Receipt.PDFTimeout = %v", cfg.Receipt.PDFTimeout)
	}
	if cfg.Receipt.PrintTimeout != 15*time.Second {
		t.Errorf("Receipt.PrintTimeout = %v, want default 15s", cfg.Receipt.PrintTimeout)
	}
	if cfg.Admin.Username != "operator" {
		t.Errorf("Admin.Username = %q", cfg.Admin.Username)
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", Name: "timbang", User: "u", Password: "p", SSLMode: "disable", Timezone: "Asia/Jakarta"}
	want := "host=db user=u password=p dbname=timbang port=5432 sslmode=disable TimeZone=Asia/Jakarta"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLocationFallback(t *testing.T) {
	c := AppConfig{Timezone: "Nowhere/Invalid"}
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, c.Location()).Zone()
	if offset != 7*60*60 {
		t.Errorf("fallback offset = %d, want %d", offset, 7*60*60)
	}
}
