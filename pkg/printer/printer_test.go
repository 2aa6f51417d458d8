package printer_test

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/timbangcerdas/timbang-api/pkg/printer"
)

func TestKeyValueLine(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		width int
		want  string
	}{
		{"fits", "Netto", "500 Kg", 20, "Netto         500 Kg"},
		{"multibyte counted as one column", "Bruto", "1.500 Kg ü", 20, "Bruto     1.500 Kg ü"},
		{"wraps when too long", "Customer", "PT Sumber Rejeki Abadi", 24, "Customer\n  PT Sumber Rejeki Abadi"},
		{"exactly one space", "Total", "485 Kg", 12, "Total 485 Kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printer.KeyValueLine(tt.key, tt.value, tt.width); got != tt.want {
				t.Errorf("KeyValueLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCenterLine(t *testing.T) {
	if got := printer.CenterLine("abcd", 10); got != "   abcd" {
		t.Errorf("CenterLine() = %q", got)
	}
	if got := printer.CenterLine("too long for it", 5); got != "too long for it" {
		t.Errorf("CenterLine() = %q", got)
	}
}

func TestDocumentBytes(t *testing.T) {
	d := printer.NewDocument(0)
	if d.Width() != 32 {
		t.Fatalf("default width = %d, want 32", d.Width())
	}
	d.SetBold(true).Text("HEADER").SetBold(false).Separator('=').KeyValue("A", "B").PartialCut()

	out := d.Bytes()
	if !bytes.HasPrefix(out, []byte{printer.ESC, '@'}) {
		t.Error("document does not start with ESC @")
	}
	if !bytes.Contains(out, []byte(strings.Repeat("=", 32)+"\n")) {
		t.Error("separator missing")
	}
	if !bytes.Contains(out, []byte("A"+strings.Repeat(" ", 30)+"B\n")) {
		t.Error("key value line missing")
	}
	if !bytes.HasSuffix(out, []byte{printer.GS, 'V', 0x01}) {
		t.Error("document does not end with partial cut")
	}
}

func TestColumnsForPaper(t *testing.T) {
	if printer.ColumnsForPaper(58) != 32 || printer.ColumnsForPaper(80) != 48 {
		t.Error("unexpected column widths")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     printer.Config
		wantErr bool
	}{
		{"none", printer.Config{Type: "none"}, false},
		{"empty", printer.Config{}, false},
		{"usb without path", printer.Config{Type: "usb"}, true},
		{"network without address", printer.Config{Type: "network"}, true},
		{"unknown", printer.Config{Type: "bluetooth"}, true},
		{"usb", printer.Config{Type: "usb", USBPath: "/dev/usb/lp0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := printer.New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNullPrinterRejectsJobs(t *testing.T) {
	p := printer.NewNullPrinter()
	if err := p.Print([]byte("x")); !errors.Is(err, printer.ErrNotConfigured) {
		t.Errorf("Print() error = %v, want ErrNotConfigured", err)
	}
	if p.IsConnected() {
		t.Error("null printer reports connected")
	}
}

func TestNetworkPrinterWritesPayload(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := printer.NewNetworkPrinter(ln.Addr().String(), time.Second, time.Second)
	if err := p.Print([]byte("struk")); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	select {
	case data := <-received:
		if string(data) != "struk" {
			t.Errorf("received %q, want %q", data, "struk")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("payload not received")
	}
}
