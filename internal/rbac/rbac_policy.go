package rbac

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

type RolePolicy struct {
	Inherits    []string `yaml:"inherits"`
	Permissions []string `yaml:"permissions"`
}

type Policy struct {
	Roles map[string]RolePolicy `yaml:"roles"`
}

// Permission is one resource/action pair of a policy.
type Permission struct {
	Resource string
	Action   string
}

func (p Permission) String() string {
	return p.Resource + ":" + p.Action
}

func ParsePermission(s string) (Permission, error) {
	resource, action, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || resource == "" || action == "" {
		return Permission{}, fmt.Errorf("invalid permission %q, expected resource:action", s)
	}
	return Permission{Resource: resource, Action: action}, nil
}

// DefaultPolicy returns the policy compiled into the binary.
func DefaultPolicy() (*Policy, error) {
	return ParsePolicy(defaultPolicy)
}

// LoadPolicy reads a policy file, or the embedded default when path is empty.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rbac policy: %w", err)
	}
	return ParsePolicy(raw)
}

func ParsePolicy(raw []byte) (*Policy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode rbac policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Policy) Validate() error {
	if len(p.Roles) == 0 {
		return fmt.Errorf("rbac policy has no roles")
	}
	for name, role := range p.Roles {
		for _, parent := range role.Inherits {
			if _, ok := p.Roles[parent]; !ok {
				return fmt.Errorf("role %s inherits unknown role %s", name, parent)
			}
			if parent == name {
				return fmt.Errorf("role %s inherits itself", name)
			}
		}
		for _, perm := range role.Permissions {
			if _, err := ParsePermission(perm); err != nil {
				return fmt.Errorf("role %s: %w", name, err)
			}
		}
	}
	return nil
}
