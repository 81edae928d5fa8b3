package otel

import (
	"context"
	"testing"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders empty endpoint: %v", err)
	}
	if providers.TracerProvider == nil || providers.MeterProvider == nil || providers.LoggerProvider == nil {
		t.Fatal("providers should not be nil")
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("shutdown should be no-op for empty endpoint, got error: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	providers, err := NewProviders(context.Background(), "   ", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders whitespace endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name         string
		endpoint     string
		wantTarget   string
		wantInsecure bool
		wantErr      bool
	}{
		{"bare host:port", "localhost:4317", "localhost:4317", true, false},
		{"http scheme", "http://collector:4317", "collector:4317", true, false},
		{"https scheme", "https://collector:4317", "collector:4317", false, false},
		{"https with path", "https://collector:4317/v1/traces", "collector:4317", false, false},
		{"missing host", "http://", "", false, true},
		{"malformed", "http://[invalid", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, insecure, err := resolveTarget(tt.endpoint, false)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveTarget(%q) should return error", tt.endpoint)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTarget(%q): %v", tt.endpoint, err)
			}
			if target != tt.wantTarget {
				t.Errorf("target = %q, want %q", target, tt.wantTarget)
			}
			if insecure != tt.wantInsecure {
				t.Errorf("insecure = %v, want %v", insecure, tt.wantInsecure)
			}
		})
	}
}

func TestResolveTarget_InsecureOverride(t *testing.T) {
	_, insecure, err := resolveTarget("https://collector:4317", true)
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if !insecure {
		t.Error("insecureOverride should force insecure even for https")
	}
}
