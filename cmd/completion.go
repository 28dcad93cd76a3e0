package cmd

import (
	"flag"
	"io"

	"github.com/etnz/cashflow/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argsPredictor is implemented by commands predicting their positional arguments.
type argsPredictor interface {
	PredictArgs() complete.Predictor
}

func (*exportCmd) PredictArgs() complete.Predictor { return predict.Set{"csv", "json"} }
func (*importCmd) PredictArgs() complete.Predictor { return predict.Files("*.json") }
func (*topicCmd) PredictArgs() complete.Predictor {
	topics, _ := docs.GetAllTopics()
	return predict.Set(topics)
}

// flagPredictors predicts the values of the flags in fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of flucas and its subcommands.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, cmds := range commands() {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			if p, ok := c.(argsPredictor); ok {
				sub.Args = p.PredictArgs()
			}
			root.Sub[c.Name()] = sub
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	root.Sub["export"].Flags["o"] = predict.Files("*")
	return root
}
