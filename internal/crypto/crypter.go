package crypto

// Decrypter turns an encrypted chunk payload back into plaintext.
type Decrypter interface {
	Name() string
	Decrypt(key []byte, ciphertext []byte) ([]byte, error)
}

// Encrypter is the inverse of a Decrypter, used to produce encrypted containers.
type Encrypter interface {
	Name() string
	Encrypt(key []byte, plaintext []byte) ([]byte, error)
}
