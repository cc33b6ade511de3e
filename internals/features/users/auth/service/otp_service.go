package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"edutrack_backend/internals/configs"
)

// OTP codes are 6 decimal digits, valid for 10 minutes, single-use.
const (
	otpDigits = 6
	OTPTTL    = 10 * time.Minute
)

var otpMax = big.NewInt(1000000)

// GenerateOTP draws a uniform random 6-digit code, zero-padded.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// HashOTP keys the digest with the signing secret so a leaked users table
// alone is not enough to forge a reset. bcrypt is overkill here: the code
// space is 10^6 and the expiry plus single-use carry the security.
func HashOTP(code string) string {
	m := hmac.New(sha256.New, []byte(configs.JWTSecret))
	m.Write([]byte(code))
	return hex.EncodeToString(m.Sum(nil))
}

// OTPMatches compares in constant time.
func OTPMatches(storedHash, code string) bool {
	return hmac.Equal([]byte(storedHash), []byte(HashOTP(code)))
}
