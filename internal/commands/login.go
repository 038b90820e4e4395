package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskdash/internal/backend/restapi"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
)

// Messages shown by the authentication commands.
const (
	msgLoginOK        = "Login successful!"
	msgLoginFailed    = "Login failed"
	msgRegisterOK     = "Registration successful!"
	msgRegisterFailed = "Registration failed"
	msgLogoutOK       = "Logged out successfully"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the credential" }
func (c *LoginCmd) Usage() string     { return "taskdash login [--email <e>] [--password <p>] [email]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = LoginCmd{}
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.Backend == config.BackendGoogle {
		return googleLogin(ctx, cfg, out, errOut)
	}

	email, err := singleValue("email", c.email, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	password, err := passwordValue(c.password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	return authenticate(cfg, out, errOut, msgLoginOK, msgLoginFailed, func(a service.Authenticator) (string, error) {
		return a.Login(ctx, email, password)
	})
}

// authenticate runs call against the REST API and stores the token it
// returns.
func authenticate(cfg *config.Config, out, errOut io.Writer, okMsg, failMsg string, call func(service.Authenticator) (string, error)) int {
	n := notifier(cfg, out, errOut)
	store := credentialStore(cfg)
	client := restapi.New(cfg.APIURL, store, restapi.WithLogger(cfg.Log()))

	token, err := call(client)
	if err != nil {
		n.Failure(service.MessageOf(err, failMsg))
		return exitCodeFor(err)
	}

	if err := store.Set(token); err != nil {
		n.Failure(fmt.Sprintf("failed to save credential: %v", err))
		return exitcode.AuthError
	}

	n.Success(okMsg)
	return exitcode.Success
}

// singleValue returns the flag value or the only positional argument.
func singleValue(name, flagValue string, args []string) (string, error) {
	if flagValue != "" && len(args) > 0 {
		return "", fmt.Errorf("cannot use both --%s and a positional %s", name, name)
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
	v := flagValue
	if len(args) == 1 {
		v = args[0]
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s required", name)
	}
	return v, nil
}

// passwordValue returns the --password flag or the environment fallback.
func passwordValue(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(config.EnvPassword); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("password required (use --password or %s)", config.EnvPassword)
}
