// Command keygen generates the secret material the service reads from its
// environment: the AES-256 data-encryption key and the HS256 token signing
// key. Run it once per environment and copy the output into the secret store.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/praxislegal/trustkit/pkg/secrets"
)

func main() {
	encryptionKey, err := secrets.GenerateEncodedKey()
	if err != nil {
		log.Fatalf("Failed to generate encryption key: %v", err)
	}

	signingKey := make([]byte, 32)
	if _, err := rand.Read(signingKey); err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	fmt.Printf("ENCRYPTION_KEY (AES-256, base64):\n———\n%s\n———\n", encryptionKey)
	fmt.Printf("JWT_SIGNING_KEY (HS256, base64):\n———\n%s\n———\n", base64.StdEncoding.EncodeToString(signingKey))
}
