package service

import "math/rand/v2"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomCode draws n characters uniformly from alphabet.
// Not suitable for anything secret.
func randomCode(n int) string {
	code := make([]byte, n)
	for i := range code {
		code[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(code)
}
