package walletauth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrUnknownAccount = errors.New("account not held by provider")
	ErrBadSignature   = errors.New("signature does not match address")
)

// Provider is an injected wallet: it lists accounts and signs messages with
// the personal_sign convention.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	PersonalSign(ctx context.Context, message, address string) (string, error)
}

// KeyProvider is a wallet holding one local secp256k1 key.
type KeyProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeyProvider loads a hex private key, with or without 0x.
func NewKeyProvider(hexKey string) (*KeyProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("load wallet key: %w", err)
	}
	return newKeyProvider(key), nil
}

// GenerateKeyProvider creates a wallet with a fresh random key.
func GenerateKeyProvider() (*KeyProvider, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return newKeyProvider(key), nil
}

func newKeyProvider(key *ecdsa.PrivateKey) *KeyProvider {
	return &KeyProvider{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

func (k *KeyProvider) Address() string { return k.address.Hex() }

// HexKey exports the private key without the 0x prefix.
func (k *KeyProvider) HexKey() string {
	return hexutil.Encode(crypto.FromECDSA(k.key))[2:]
}

func (k *KeyProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return []string{k.address.Hex()}, nil
}

// PersonalSign signs the EIP-191 hash of message and returns the 65 byte
// signature in hex with V in {27, 28}.
func (k *KeyProvider) PersonalSign(ctx context.Context, message, address string) (string, error) {
	if !common.IsHexAddress(address) || common.HexToAddress(address) != k.address {
		return "", fmt.Errorf("%w: %s", ErrUnknownAccount, address)
	}
	sig, err := crypto.Sign(textHash(message), k.key)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// Verify checks a personal_sign signature the way the login endpoint does.
func Verify(address, message, signature string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address %q", address)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature length %d", len(sig))
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pub, err := crypto.SigToPub(textHash(message), sig)
	if err != nil {
		return fmt.Errorf("recover key: %w", err)
	}
	if crypto.PubkeyToAddress(*pub) != common.HexToAddress(address) {
		return ErrBadSignature
	}
	return nil
}

// textHash is the EIP-191 hash personal_sign signs.
func textHash(message string) []byte {
	return crypto.Keccak256([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)))
}
