package git

import (
	"context"
	"strings"
)

const opConfig = "config"

// ConfigValue reads a single git configuration value for the repository
// the operation runs in. A key that is not set yields an empty value, not
// an error; git signals absence through exit code 1.
func (s *Service) ConfigValue(ctx context.Context, key string, oc OpContext) (string, error) {
	if key == "" {
		return "", NewValidationError(opConfig, "config key is required")
	}

	dir, err := resolveDir(opConfig, oc)
	if err != nil {
		return "", err
	}

	s.logger.Debug("config read requested", "tenant", oc.tenant(), "dir", dir, "key", key)

	res, err := s.run(ctx, opConfig, dir, "config", "--get", key)
	if err != nil {
		return "", err
	}
	switch res.ExitCode {
	case 0:
		return strings.TrimSpace(res.Stdout), nil
	case 1:
		return "", nil
	default:
		return "", executionError(opConfig, res)
	}
}
