package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// Accessor is satisfied by *secretmanager.Client.
type Accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// LoadPrivateKey reads the wallet key from Secret Manager. name is a full
// version resource, e.g. projects/p/secrets/s/versions/latest.
func LoadPrivateKey(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer client.Close()

	return ReadPrivateKey(ctx, client, name)
}

func ReadPrivateKey(ctx context.Context, accessor Accessor, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("secret name is empty")
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}

	res, err := accessor.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret version %s: %w", name, err)
	}
	if res == nil || res.Payload == nil {
		return "", fmt.Errorf("empty payload for secret %s", name)
	}

	key := strings.TrimSpace(string(res.Payload.Data))
	if key == "" {
		return "", fmt.Errorf("secret %s is empty", name)
	}
	return key, nil
}
