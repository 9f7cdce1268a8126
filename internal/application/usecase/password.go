package usecase

import (
	"crypto/rand"
	"math/big"
)

// passwordCharset caracteres de las contraseñas generadas.
const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GeneratedPasswordLength longitud de las contraseñas generadas.
const GeneratedPasswordLength = 12

// GeneratePassword contraseña aleatoria de n caracteres con crypto/rand.
func GeneratePassword(n int) (string, error) {
	if n <= 0 {
		n = GeneratedPasswordLength
	}
	max := big.NewInt(int64(len(passwordCharset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordCharset[idx.Int64()]
	}
	return string(b), nil
}
