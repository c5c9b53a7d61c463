// cmd/crash.go
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
)

// goroutineWait bounds how long crash waits for a panicking goroutine to be
// handled.
const goroutineWait = 10 * time.Second

var crashKinds = map[string]func(message string){
	"string": func(message string) {
		panic(message)
	},
	"error": func(message string) {
		panic(errors.New(message))
	},
	"nil": func(string) {
		var t *crashTarget
		fmt.Println(t.value)
	},
	"index": func(message string) {
		values := []int{}
		fmt.Println(values[len(message)])
	},
	"value": func(string) {
		panic(crashTarget{value: 42})
	},
}

type crashTarget struct {
	value int
}

var crashCmd = &cobra.Command{
	Use:   "crash",
	Short: "Panic on purpose to preview the crash message",
	Long: `Trigger a panic of the given kind. The installed handler writes a crash
report and prints the message a user would see.

Set GOTRACEBACK to get the runtime's own panic output instead.`,
	Args: cobra.NoArgs,
	RunE: runCrash,
}

func init() {
	crashCmd.Flags().StringP("kind", "k", "string", "panic kind: "+strings.Join(crashKindNames(), ", ")+", goroutine")
	crashCmd.Flags().StringP("message", "m", "something went wrong", "panic message for string, error and goroutine kinds")
	rootCmd.AddCommand(crashCmd)
}

func runCrash(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	message, _ := cmd.Flags().GetString("message")

	if kind == "goroutine" {
		humanpanic.Go(func() {
			panic(message)
		})
		time.Sleep(goroutineWait)
		return errors.New("goroutine panic was not handled")
	}

	trigger, ok := crashKinds[kind]
	if !ok {
		return errors.Newf("unknown crash kind %q", kind)
	}
	trigger(message)
	return nil
}

func crashKindNames() []string {
	return []string{"string", "error", "nil", "index", "value"}
}
