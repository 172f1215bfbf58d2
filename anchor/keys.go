package anchor

import "context"

type saveKeysPayload struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// SaveKeys stores an SSH key pair on the backend. The private key must be
// base64 encoded. The endpoint predates the status convention and answers
// with {"success": true, "message": "Keys saved securely to file."}.
func (c *Client) SaveKeys(ctx context.Context, publicKey, privateKey string) (any, error) {
	return c.post(ctx, "/api/save-keys", saveKeysPayload{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	})
}

// GetKeys retrieves the stored key pair. The private key comes back base64
// encoded under keys.private_key.
func (c *Client) GetKeys(ctx context.Context) (any, error) {
	return c.get(ctx, "/api/get-keys", nil)
}
