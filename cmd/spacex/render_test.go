package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
)

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]outputFormat{
		"":       outputAuto,
		"auto":   outputAuto,
		" JSON ": outputJSON,
		"text":   outputText,
	}
	for in, want := range cases {
		got, err := parseOutputFormat(in)
		if err != nil || got != want {
			t.Errorf("parseOutputFormat(%q) = %q, %v want %q", in, got, err, want)
		}
	}
	if _, err := parseOutputFormat("yaml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewPrinterForChoosesJSONWhenPiped(t *testing.T) {
	if !newPrinterFor(nil, outputAuto, false).json {
		t.Fatal("auto without a terminal should print JSON")
	}
	if newPrinterFor(nil, outputAuto, true).json {
		t.Fatal("auto on a terminal should print text")
	}
	if !newPrinterFor(nil, outputJSON, true).json {
		t.Fatal("explicit json should win over terminal detection")
	}
	if newPrinterFor(nil, outputText, false).json {
		t.Fatal("explicit text should win over terminal detection")
	}
}

func TestPrinterNextLaunchAbsent(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinterFor(&buf, outputJSON, false).nextLaunch(nil); err != nil {
		t.Fatalf("nextLaunch: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Fatalf("expected null, got %q", buf.String())
	}

	buf.Reset()
	if err := newPrinterFor(&buf, outputText, false).nextLaunch(nil); err != nil {
		t.Fatalf("nextLaunch: %v", err)
	}
	if !strings.Contains(buf.String(), "No upcoming launch") {
		t.Fatalf("unexpected text %q", buf.String())
	}
}

func TestPrinterLaunchesJSONPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	ls := []spacex.Launch{{ID: "b", Name: "Second"}, {ID: "a", Name: "First"}}
	if err := newPrinterFor(&buf, outputJSON, false).launches(ls); err != nil {
		t.Fatalf("launches: %v", err)
	}
	var decoded []spacex.Launch
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "b" || decoded[1].ID != "a" {
		t.Fatalf("unexpected decoded launches %+v", decoded)
	}
}

func TestFormatLaunchText(t *testing.T) {
	failed := false
	out := formatLaunch(spacex.Launch{
		ID:            "5eb87cd9ffd86e000604b32a",
		FlightNumber:  1,
		Name:          "FalconSat",
		DateUTC:       time.Date(2006, 3, 24, 22, 30, 0, 0, time.UTC),
		DatePrecision: "hour",
		Success:       &failed,
		Failures:      []spacex.Failure{{Time: 33, Reason: "merlin engine failure"}},
		Launchpad:     "5e9e4502f5090995de566f86",
	})

	for _, want := range []string{
		"FalconSat (#1)",
		"2006-03-24T22:30:00Z (hour)",
		"failed",
		"T+33s merlin engine failure",
		"5e9e4502f5090995de566f86",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted launch missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "webcast") {
		t.Errorf("empty fields should be omitted:\n%s", out)
	}
}

func TestPrinterPayloadsText(t *testing.T) {
	mass := 20.0
	var buf bytes.Buffer
	err := newPrinterFor(&buf, outputText, true).payloads([]spacex.Payload{
		{ID: "p1", Name: "FalconSAT-2", Type: "Satellite", Orbit: "LEO", Regime: "low-earth", MassKg: &mass, Customers: []string{"DARPA"}},
	})
	if err != nil {
		t.Fatalf("payloads: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"FalconSAT-2", "LEO / low-earth", "20 kg", "DARPA"} {
		if !strings.Contains(out, want) {
			t.Errorf("payload output missing %q:\n%s", want, out)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(", ", "Cape Canaveral", "", "Florida"); got != "Cape Canaveral, Florida" {
		t.Fatalf("joinNonEmpty = %q", got)
	}
}
