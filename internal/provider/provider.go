package provider

import "context"

// OtpSender delivers a one-time code to a phone over SMS.
type OtpSender interface {
	SendOtp(ctx context.Context, phone, code string) error
}
