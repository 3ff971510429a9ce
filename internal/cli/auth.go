package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in and out of the local identity provider",
}

var authSignupCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSignup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	RunE:  runAuthWhoami,
}

func init() {
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		return string(pw), err
	}
	// Piped input (tests, scripts) reads a plain line.
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// adoptSession mirrors the provider session into the document's current user.
// Called after every sign-in/out so the board surface reflects who is acting.
func adoptSession(s *store.Store, sess *auth.Session) {
	if sess == nil {
		s.SetCurrentUser(nil)
		return
	}
	s.SetCurrentUser(&model.User{
		ID:    sess.UserID,
		Name:  sess.Name,
		Email: sess.Email,
		Role:  model.RoleAdmin,
	})
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	p, err := mustProvider()
	if err != nil {
		return err
	}
	pw, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if err := p.SignUp(args[0], pw); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()
	adoptSession(s, p.CurrentSession())

	fmt.Printf("Signed up and in as %s\n", args[0])
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	p, err := mustProvider()
	if err != nil {
		return err
	}
	pw, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if err := p.SignIn(args[0], pw); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()
	adoptSession(s, p.CurrentSession())

	fmt.Printf("Signed in as %s\n", args[0])
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	p, err := mustProvider()
	if err != nil {
		return err
	}
	if err := p.SignOut(); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()
	adoptSession(s, nil)

	fmt.Println("Signed out")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	p, err := mustProvider()
	if err != nil {
		return err
	}
	sess := p.CurrentSession()
	if sess == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\nsession expires %s\n", sess.Name, sess.Email, sess.ExpiresAt.Format("2006-01-02 15:04 MST"))
	return nil
}
