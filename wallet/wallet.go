package wallet

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"

	"github.com/DrDelphi/LotteryDeployer/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ripemd160"
)

var log = logger.GetOrCreate("wallet")

const (
	hardened = hdkeychain.HardenedKeyStart

	// cosmos SLIP-0044 coin type
	coinType = 118

	algoSecp256k1 = "secp256k1"
)

var prefixRegexp = regexp.MustCompile(`^[a-z][a-z0-9]{0,82}$`)

// HDPath is a BIP32 derivation path
type HDPath []uint32

// CosmosHDPath - m/44'/118'/0'/0/index
func CosmosHDPath(index uint32) HDPath {
	return HDPath{44 + hardened, coinType + hardened, hardened, 0, index}
}

func (p HDPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, idx := range p {
		if idx >= hardened {
			fmt.Fprintf(&sb, "/%d'", idx-hardened)
		} else {
			fmt.Fprintf(&sb, "/%d", idx)
		}
	}

	return sb.String()
}

type account struct {
	path HDPath
	priv *btcec.PrivateKey
	data data.Account
}

// Secp256k1HdWallet - holds the accounts derived from one mnemonic
type Secp256k1HdWallet struct {
	prefix   string
	accounts []*account
}

// NewSecp256k1HdWallet - derives the accounts of a mnemonic for the given
// address prefix. Without paths the first cosmos account is derived.
func NewSecp256k1HdWallet(mnemonic, prefix string, paths ...HDPath) (*Secp256k1HdWallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if mnemonic == "" {
		return nil, data.NewCredentialError("mnemonic is empty", nil)
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, data.NewCredentialError("invalid mnemonic", nil)
	}
	if !prefixRegexp.MatchString(prefix) {
		return nil, data.NewCredentialError(fmt.Sprintf("invalid address prefix %q", prefix), nil)
	}
	if len(paths) == 0 {
		paths = []HDPath{CosmosHDPath(0)}
	}

	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, data.NewCredentialError("can not create master key", err)
	}

	w := &Secp256k1HdWallet{prefix: prefix}
	for _, path := range paths {
		acc, err := deriveAccount(master, path, prefix)
		if err != nil {
			log.Error("can not derive account", "path", path.String(), "error", err)
			return nil, err
		}
		w.accounts = append(w.accounts, acc)
	}

	return w, nil
}

func deriveAccount(master *hdkeychain.ExtendedKey, path HDPath, prefix string) (*account, error) {
	key := master
	for _, idx := range path {
		child, err := key.Derive(idx)
		if err != nil {
			return nil, data.NewCredentialError("can not derive "+path.String(), err)
		}
		key = child
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, data.NewCredentialError("can not extract private key", err)
	}

	pub := priv.PubKey().SerializeCompressed()
	address, err := PubKeyToAddress(pub, prefix)
	if err != nil {
		return nil, data.NewCredentialError("can not encode address", err)
	}

	return &account{
		path: path,
		priv: priv,
		data: data.Account{Address: address, Algo: algoSecp256k1, PubKey: pub},
	}, nil
}

// Prefix returns the bech32 prefix of the wallet addresses
func (w *Secp256k1HdWallet) Prefix() string {
	return w.prefix
}

// GetAccounts returns the derived accounts in derivation order
func (w *Secp256k1HdWallet) GetAccounts() []data.Account {
	res := make([]data.Account, 0, len(w.accounts))
	for _, acc := range w.accounts {
		res = append(res, acc.data)
	}

	return res
}

// Sign - signs sha256(signBytes) with the key of address. The signature is
// the 64 bytes r||s form with a low s value.
func (w *Secp256k1HdWallet) Sign(address string, signBytes []byte) ([]byte, error) {
	acc := w.find(address)
	if acc == nil {
		return nil, data.NewCredentialError("address not found in wallet: "+address, nil)
	}

	return signCompact(acc.priv, signBytes), nil
}

func (w *Secp256k1HdWallet) find(address string) *account {
	for _, acc := range w.accounts {
		if acc.data.Address == address {
			return acc
		}
	}

	return nil
}

func signCompact(priv *btcec.PrivateKey, signBytes []byte) []byte {
	hash := sha256.Sum256(signBytes)
	sig := ecdsa.SignCompact(priv, hash[:], true)

	// drop the recovery byte
	return sig[1:]
}

// PubKeyToAddress - bech32(prefix, ripemd160(sha256(compressed pubkey)))
func PubKeyToAddress(pub []byte, prefix string) (string, error) {
	sha := sha256.Sum256(pub)
	hasher := ripemd160.New()
	hasher.Write(sha[:])

	conv, err := bech32.ConvertBits(hasher.Sum(nil), 8, 5, true)
	if err != nil {
		return "", err
	}

	return bech32.Encode(prefix, conv)
}

// ValidateAddress - checks the bech32 checksum and the prefix of an address
func ValidateAddress(address, prefix string) error {
	hrp, _, err := bech32.Decode(address)
	if err != nil {
		return err
	}
	if hrp != prefix {
		return fmt.Errorf("address prefix %q does not match %q", hrp, prefix)
	}

	return nil
}
