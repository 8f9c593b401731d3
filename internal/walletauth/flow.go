// Package walletauth logs an operator into the CMS admin by signing a
// server challenge with a wallet.
package walletauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/san-kum/pagefx/internal/page"
)

const (
	DefaultAdminPath = "/admin"

	noProviderMessage = "Ethereum provider not detected. Please install MetaMask."
	failureMessage    = "Error logging in through wallet"
)

var (
	ErrNoProvider = errors.New("no wallet provider")
	ErrNoAccounts = errors.New("wallet returned no accounts")
	ErrRejected   = errors.New("login rejected")
)

// Flow runs one login attempt. It never retries.
type Flow struct {
	Provider  Provider
	Client    *Client
	Notifier  page.Notifier
	Navigator page.Navigator
	AdminPath string
	Logger    *log.Logger
}

// Login asks the wallet for its first account, signs the server's challenge
// and posts it back. An accepted verdict navigates to the admin path. A
// rejected one is only logged; any other failure also alerts.
func (f *Flow) Login(ctx context.Context) (Verdict, error) {
	logger := f.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if f.Provider == nil {
		f.Notifier.Alert(noProviderMessage)
		return Verdict{}, ErrNoProvider
	}

	v, err := f.login(ctx)
	if err != nil {
		logger.Printf("wallet login: %v", err)
		if !errors.Is(err, ErrRejected) {
			f.Notifier.Alert(failureMessage)
		}
		return v, err
	}
	logger.Printf("wallet login: %s accepted", v.Address)

	admin := f.AdminPath
	if admin == "" {
		admin = DefaultAdminPath
	}
	f.Navigator.Navigate(admin)
	return v, nil
}

func (f *Flow) login(ctx context.Context) (Verdict, error) {
	accts, err := f.Provider.RequestAccounts(ctx)
	if err != nil {
		return Verdict{}, fmt.Errorf("request accounts: %w", err)
	}
	if len(accts) == 0 {
		return Verdict{}, ErrNoAccounts
	}
	address := accts[0]

	challenge, err := f.Client.Challenge(ctx, address)
	if err != nil {
		return Verdict{}, err
	}

	sig, err := f.Provider.PersonalSign(ctx, challenge, address)
	if err != nil {
		return Verdict{}, fmt.Errorf("sign challenge: %w", err)
	}

	v, err := f.Client.Submit(ctx, Callback{Address: address, Challenge: challenge, Signature: sig})
	if err != nil {
		return Verdict{}, err
	}
	if !v.Accepted() {
		reason := v.Status
		if reason == "" {
			reason = v.Error
		}
		return v, fmt.Errorf("%w: %s", ErrRejected, reason)
	}
	if v.Address == "" {
		v.Address = address
	}
	return v, nil
}
