package services

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
)

// Phone sign-in: a short-lived TOTP secret is minted per phone number and a
// six-digit code derived from it is handed to the SMS gateway. The code stays
// valid for one period plus skew, the secret for codeTTL.
const (
	codePeriod = 300 // seconds
	codeTTL    = 10 * time.Minute
)

var codeOpts = totp.ValidateOpts{
	Period:    codePeriod,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type VerificationService struct {
	client *redis.Client
}

var GlobalVerification *VerificationService

func NewVerificationService(client *redis.Client) *VerificationService {
	return &VerificationService{client: client}
}

func phoneKey(phone string) string {
	return fmt.Sprintf("phone_verify:%s", phone)
}

// StartPhoneVerification mints a verification code for the phone number.
// The returned code goes to the SMS gateway, never to the API response.
func (s *VerificationService) StartPhoneVerification(ctx context.Context, phone string) (string, error) {
	if !utils.ValidatePhoneNumber(phone) {
		return "", fmt.Errorf("invalid phone number")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "toRemind",
		AccountName: phone,
		Period:      codePeriod,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate verification secret: %v", err)
	}

	if err := s.client.Set(ctx, phoneKey(phone), key.Secret(), codeTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification secret: %v", err)
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), time.Now(), codeOpts)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %v", err)
	}
	return code, nil
}

// VerifyPhoneCode checks the submitted code; the secret is single-use and
// deleted on success.
func (s *VerificationService) VerifyPhoneCode(ctx context.Context, phone, code string) (bool, error) {
	secret, err := s.client.Get(ctx, phoneKey(phone)).Result()
	if err == redis.Nil {
		return false, nil // expired or never requested
	}
	if err != nil {
		return false, fmt.Errorf("failed to load verification secret: %v", err)
	}

	valid, err := totp.ValidateCustom(code, secret, time.Now(), codeOpts)
	if err != nil {
		return false, fmt.Errorf("failed to validate code: %v", err)
	}
	if valid {
		s.client.Del(ctx, phoneKey(phone))
	}
	return valid, nil
}
