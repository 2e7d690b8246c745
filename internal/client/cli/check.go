package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/pwnedcheck/internal/breach"
)

// RunCheck проверяет пароли и печатает по строке на пароль в порядке ввода.
// Возвращает код выхода: ExitSafe, ExitFound или ExitError.
// Ошибка ввода или отсутствие паролей возвращаются как error.
func (c *Cli) RunCheck(ctx context.Context, lookup *breach.Lookup, args []string) (int, error) {
	var fromArgs stringList

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&fromArgs, "p", "Password to check (repeatable)")
	fs.Var(&fromArgs, "passwords", "Password to check (repeatable)")
	fromFile := fs.String("file", "", "File with passwords, one per line")
	show := fs.Bool("show", false, "Print passwords unmasked")
	// -p a b c: позиционные аргументы тоже пароли, флаги допустимы и после них
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return ExitError, fmt.Errorf("invalid check arguments: %w", err)
	}
	fromArgs = append(fromArgs, positional...)

	passwords, err := c.getPasswords(Passwords{
		FromFile: *fromFile,
		FromArgs: fromArgs,
	})
	if err != nil {
		return ExitError, err
	}

	results, err := lookup.CheckBatch(ctx, passwords)
	if err != nil {
		return ExitError, err
	}

	code := ExitSafe
	for _, r := range results {
		label := maskPassword(r.Password)
		if *show {
			label = r.Password
		}

		if r.Err != nil {
			c.io.Printf("#%d %s: error: %s\n", r.Index+1, label, describeError(r.Err))
			code = ExitError
			continue
		}

		c.io.Printf("#%d %s: %s\n", r.Index+1, label, r.Result)
		if r.Result.Found && r.Result.Count > 0 && code == ExitSafe {
			code = ExitFound
		}
	}

	return code, nil
}

// describeError сокращает ошибку до понятной пользователю строки
func describeError(err error) string {
	var (
		inputErr     *breach.InputError
		remoteErr    *breach.RemoteServiceError
		transportErr *breach.TransportError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Err.Error()
	case errors.As(err, &remoteErr):
		return remoteErr.Error()
	case errors.As(err, &transportErr):
		return fmt.Sprintf("range service unreachable: %v", transportErr.Err)
	default:
		return err.Error()
	}
}
