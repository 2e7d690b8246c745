package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/pwnedcheck/internal/client/iocli"
)

// PasswordsEnv переменная окружения со списком паролей, по одному на строку
const PasswordsEnv = "PWNEDCHECK_PASSWORDS"

// Коды выхода команды check
const (
	ExitSafe  = 0
	ExitError = 1
	ExitFound = 2
)

// Passwords источники паролей для проверки
type Passwords struct {
	FromFile string
	FromArgs []string
}

type Cli struct {
	io     iocli.IO
	logger *slog.Logger
}

func New(io iocli.IO, logger *slog.Logger) *Cli {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cli{
		io:     io,
		logger: logger,
	}
}

// getPasswords retrieves passwords from various sources with priority:
// 1. Environment variable PWNEDCHECK_PASSWORDS
// 2. File specified in passwords.FromFile
// 3. Command-line arguments
// 4. Interactive prompt, or piped stdin when it is not a terminal
func (c *Cli) getPasswords(passwords Passwords) ([]string, error) {
	// Priority 1: Environment variable
	if envPasswords := os.Getenv(PasswordsEnv); envPasswords != "" {
		list, err := iocli.ReadLines(strings.NewReader(envPasswords))
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%s has no passwords", PasswordsEnv)
		}
		return list, nil
	}

	// Priority 2: File
	if passwords.FromFile != "" {
		f, err := os.Open(passwords.FromFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read password file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()

		list, err := iocli.ReadLines(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read password file: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("password file is empty")
		}
		return list, nil
	}

	// Priority 3: CLI arguments
	if len(passwords.FromArgs) > 0 {
		return passwords.FromArgs, nil
	}

	// Priority 4: stdin
	if !c.io.IsTerminal() {
		list, err := c.io.ReadLines()
		if err != nil {
			return nil, fmt.Errorf("failed to read passwords from stdin: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("no passwords on stdin")
		}
		return list, nil
	}

	password, err := c.io.ReadPassword("Password to check: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	return []string{password}, nil
}

func PrintUsage() {
	fmt.Println("pwnedcheck - check passwords against the breach corpus")
	fmt.Println()
	fmt.Println("Only the first 5 characters of the SHA-1 hash leave this machine.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pwnedcheck [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version              Show version information")
	fmt.Println("  --api URL              Range API base URL (default: https://api.pwnedpasswords.com/range)")
	fmt.Println("  --corpus PATH          Check against a local corpus instead of the API")
	fmt.Println("  --store bolt|sqlite    Local corpus store (default: bolt)")
	fmt.Println("  --timeout DURATION     Per-request timeout (default: 10s)")
	fmt.Println("  --concurrency N        Parallel range requests (default: 4)")
	fmt.Println("  --rps N                Max range requests per second, 0 = unlimited")
	fmt.Println("  --padding              Ask the API to pad responses")
	fmt.Println("  --strict               Fail on malformed range lines instead of skipping them")
	fmt.Println("  --verbose              Debug logging to stderr")
	fmt.Println()
	fmt.Println("Password Priority (highest to lowest):")
	fmt.Println("  1. " + PasswordsEnv + " environment variable (one per line)")
	fmt.Println("  2. check --file PATH (one per line)")
	fmt.Println("  3. check -p PASSWORD [PASSWORD ...]")
	fmt.Println("  4. stdin: piped input, or an interactive hidden prompt")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check                  Check passwords")
	fmt.Println("  import                 Import an ordered-by-hash dump into a local corpus")
	fmt.Println()
	fmt.Println("Exit codes:")
	fmt.Println("  0  all passwords safe")
	fmt.Println("  1  lookup or input error")
	fmt.Println("  2  at least one password found in the corpus")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  pwnedcheck check")
	fmt.Println("  pwnedcheck check -p password 'correct horse battery staple'")
	fmt.Println("  pwnedcheck check --file passwords.txt")
	fmt.Println("  cat passwords.txt | pwnedcheck --padding check")
	fmt.Println("  pwnedcheck import --store bolt --db corpus.db --file pwned-passwords-sha1-ordered-by-hash.txt")
	fmt.Println("  pwnedcheck --corpus corpus.db check -p password")
	fmt.Println("  pwnedcheck --api http://localhost:8080/range check -p password")
}
