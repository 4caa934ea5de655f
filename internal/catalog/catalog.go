// Package catalog loads a registry of named WTSS deployments from a
// YAML or JSON file, so CLI users can refer to services by id instead of
// pasting base URLs.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Service describes one WTSS deployment.
type Service struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Host           string `json:"host" yaml:"host"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Registry is a validated, id-indexed set of services.
type Registry struct {
	services []Service
	index    map[string]Service
}

type registryFile struct {
	Services []Service `json:"services" yaml:"services"`
}

const defaultTimeoutSeconds = 15

// Timeout returns the per-request timeout for the service.
func (s Service) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads a service registry from the given file.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("services file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read services file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Services) == 0 {
		return nil, errors.New("services file contains no services entries")
	}

	reg := &Registry{
		services: make([]Service, 0, len(parsed.Services)),
		index:    make(map[string]Service, len(parsed.Services)),
	}
	for i, svc := range parsed.Services {
		svc = sanitizeService(svc)
		if err := validateService(svc); err != nil {
			return nil, fmt.Errorf("service[%d]: %w", i, err)
		}
		if _, exists := reg.index[svc.ID]; exists {
			return nil, fmt.Errorf("duplicate service id %q", svc.ID)
		}
		reg.services = append(reg.services, svc)
		reg.index[svc.ID] = svc
	}
	return reg, nil
}

// All returns the registered services in file order.
func (r *Registry) All() []Service {
	if r == nil || len(r.services) == 0 {
		return nil
	}
	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out
}

// ByID returns the service entry for the given id, if registered.
func (r *Registry) ByID(id string) (Service, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return Service{}, false
	}
	svc, ok := r.index[id]
	return svc, ok
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var parsed registryFile
		if err := d.fn(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	return registryFile{}, errors.New("services file format not recognized (expected YAML or JSON)")
}

func sanitizeService(s Service) Service {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Host = strings.TrimSpace(s.Host)
	return s
}

func validateService(s Service) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Host == "" {
		return fmt.Errorf("host is required for service %q", s.ID)
	}
	return nil
}
