package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write services file: %v", err)
	}
	return path
}

func TestLoadServicesYAML(t *testing.T) {
	path := writeFile(t, "services.yaml", `
services:
  - id: esensing
    name: INPE e-sensing
    host: http://www.dpi.inpe.br/tws
    timeout_seconds: 30
`)

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(reg.All()) != 1 {
		t.Fatalf("expected 1 service, got %d", len(reg.All()))
	}

	svc, ok := reg.ByID("esensing")
	if !ok {
		t.Fatal("expected service id esensing to be registered")
	}
	if svc.Host != "http://www.dpi.inpe.br/tws" {
		t.Fatalf("unexpected host: %s", svc.Host)
	}
	if svc.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", svc.Timeout())
	}
}

func TestLoadServicesJSON(t *testing.T) {
	path := writeFile(t, "services.json", `{"services":[{"id":"local","host":"http://localhost:7654"}]}`)

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	svc, ok := reg.ByID("local")
	if !ok {
		t.Fatal("expected service id local to be registered")
	}
	if svc.Timeout() != defaultTimeoutSeconds*time.Second {
		t.Fatalf("expected default timeout, got %v", svc.Timeout())
	}
}

func TestLoadServicesDuplicateID(t *testing.T) {
	path := writeFile(t, "services.yaml", `
services:
  - id: duplicate
    host: http://one.example
  - id: duplicate
    host: http://two.example
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected duplicate service error, got nil")
	}
}

func TestLoadServicesRequiresHost(t *testing.T) {
	path := writeFile(t, "services.yaml", `
services:
  - id: hostless
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected missing host error, got nil")
	}
}
