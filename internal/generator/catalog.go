package generator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/arcdefender/arc-defender/internal/model"
)

// Catalog is the vocabulary synthetic records are drawn from.
type Catalog struct {
	AlertMessages []string         `yaml:"alert_messages"`
	Statuses      []StatusEntry    `yaml:"statuses"`
	ThreatTypes   []string         `yaml:"threat_types"`
	Categories    []string         `yaml:"categories"`
	SourceIPs     []string         `yaml:"source_ips"`
	Severities    []model.Severity `yaml:"severities"`
}

type StatusEntry struct {
	Component string `yaml:"component"`
	Status    string `yaml:"status"`
}

// DefaultCatalog returns the built-in vocabulary.
func DefaultCatalog() *Catalog {
	return &Catalog{
		AlertMessages: []string{
			"Unauthorized login attempt detected.",
			"Port scan activity from external IP.",
			"Malware signature detected in packet stream.",
			"Unusual outbound traffic volume.",
			"Suspicious SSH access from 10.0.0.45.",
			"Firewall rule triggered on port 443.",
			"Brute-force login attempt blocked.",
			"High latency detected in IDS module.",
			"System process anomaly detected.",
			"External IP 198.51.100.23 flagged as malicious.",
		},
		Statuses: []StatusEntry{
			{Component: "IDS engine", Status: "Running"},
			{Component: "Firewall rules", Status: "Active"},
			{Component: "Log monitoring", Status: "Enabled"},
			{Component: "Backup", Status: "Scheduled 3AM"},
		},
		ThreatTypes: []string{
			"Port Scan",
			"SQL Injection",
			"Brute Force",
			"Phishing Email",
			"Trojan Download",
			"SYN Flood",
			"Ransomware Beacon",
			"Privilege Escalation",
		},
		Categories: []string{"malware", "phishing", "ddos", "ransomware", "insider"},
		SourceIPs: []string{
			"192.168.1.10",
			"10.0.0.45",
			"172.16.4.20",
			"198.51.100.23",
			"203.0.113.7",
			"45.33.32.156",
			"185.220.101.4",
			"91.240.118.12",
		},
		Severities: append([]model.Severity(nil), model.Severities...),
	}
}

// LoadCatalog reads a YAML catalog. Lists missing from the file keep their
// built-in values.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	cat := DefaultCatalog()
	if len(file.AlertMessages) > 0 {
		cat.AlertMessages = file.AlertMessages
	}
	if len(file.Statuses) > 0 {
		cat.Statuses = file.Statuses
	}
	if len(file.ThreatTypes) > 0 {
		cat.ThreatTypes = file.ThreatTypes
	}
	if len(file.Categories) > 0 {
		cat.Categories = file.Categories
	}
	if len(file.SourceIPs) > 0 {
		cat.SourceIPs = file.SourceIPs
	}
	if len(file.Severities) > 0 {
		cat.Severities = file.Severities
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	for _, s := range c.Severities {
		if !s.Valid() {
			return fmt.Errorf("catalog: invalid severity %q", s)
		}
	}
	for _, s := range c.Statuses {
		if s.Component == "" {
			return fmt.Errorf("catalog: status entry without component")
		}
	}
	return nil
}
