package cmd

import (
	"flag"

	"github.com/etnz/dashboard/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argPredictors predicts the positional arguments of the subcommands that have some.
var argPredictors = map[string]complete.Predictor{
	"import":  predict.Files("*.csv"),
	"restore": predict.Files("*.json"),
	"topic":   predict.Set(topicNames()),
}

func topicNames() []string {
	all, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(all, "readme")
}

// flagPredictors predicts flag values, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"o":      predict.Files("*"),
	"state":  predict.Dirs("*"),
	"store":  predict.Set{"file", "bolt"},
	"mode":   predict.Set{"positions", "balances"},
	"type":   predict.Set{"Cash", "Term Deposit", "Managed Fund", "ETF", "Shares", "Crypto", "Private", "Other"},
	"sleeve": predict.Something,
}

// Completion returns the shell completion of dash, built from the flags of
// the global flag set and of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagsOf(flag.CommandLine),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagsOf(f),
			Args:  argPredictors[c.Name()],
		}
	}
	return root
}

func flagsOf(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
