package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/ttacon/chalk"
	bettererrors "github.com/xtuc/better-errors"
	bettererrorstree "github.com/xtuc/better-errors/printer/tree"
)

var version = "dev"

func GetVersion() string {
	return version
}

func FailWith(err error) {
	if bettererrors.IsBetterError(err) {

		command := strings.Join(os.Args, " ")

		berror := bettererrors.
			New(command).
			SetContext("version", GetVersion()).
			With(err)

		msg := bettererrorstree.PrintChain(berror)

		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, chalk.Red.Color("❌  An error occurred."))
		fmt.Fprintln(os.Stderr, "")

		fmt.Fprint(os.Stderr, msg)

		fmt.Fprintln(os.Stderr, "")

		os.Exit(1)
	} else {
		fmt.Fprintln(os.Stderr, chalk.Red.Color(err.Error()))
		os.Exit(1)
	}
}

func WarnWith(err error) {
	fmt.Fprintln(os.Stderr, FormatError(err))
}

// FormatError renders better-errors chains as a tree, other errors as-is.
func FormatError(err error) string {
	if chain, ok := err.(*bettererrors.Chain); ok {
		return chalk.Yellow.Color("⚠️  Warning") + "\n" + bettererrorstree.PrintChain(chain)
	}

	return err.Error()
}
