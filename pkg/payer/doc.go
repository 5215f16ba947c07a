// Package payer wraps the /v2/payer compliance endpoints: onboarding a payer
// for crypto-to-fiat payments, tracking KYC and agreement status, and
// registering bank payment details.
package payer
