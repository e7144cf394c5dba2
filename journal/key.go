package journal

import (
	"crypto/sha512"
	"io"

	"github.com/Station-Manager/errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives the ChaCha20 key and nonce for the journal file called
// name. The same (name, passphrase, deviceID) always yields the same pair,
// and every journal name gets its own keystream.
func DeriveKey(name, passphrase, deviceID string) (key, nonce []byte, err error) {
	const op errors.Op = "journal.DeriveKey"
	r := hkdf.New(sha512.New, []byte(passphrase), []byte(deviceID), []byte(name))

	buf := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err = io.ReadFull(r, buf); err != nil {
		return nil, nil, errors.New(op).Err(err).Msg(errMsgDeriveKey)
	}
	return buf[:chacha20.KeySize], buf[chacha20.KeySize:], nil
}

func newCipher(name, passphrase, deviceID string) (*chacha20.Cipher, error) {
	const op errors.Op = "journal.newCipher"
	key, nonce, err := DeriveKey(name, passphrase, deviceID)
	if err != nil {
		return nil, err
	}
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgCipher)
	}
	return c, nil
}
