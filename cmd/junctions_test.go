package cmd

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func Test_junctionsExec(t *testing.T) {
	target, _ := filepath.Abs(path.Join("..", "test", "target.fa"))
	out, _ := filepath.Abs(path.Join("..", "test", "output", "target.output.json"))
	os.MkdirAll(filepath.Dir(out), 0755)

	junctionsCmd.Flags().Set("in", target)
	junctionsCmd.Flags().Set("out", out)
	junctionsCmd.Flags().Set("fragments", "2")

	type args struct {
		cmd  *cobra.Command
		args []string
	}
	tests := []struct {
		name string
		args args
	}{
		{
			"end to end test",
			args{
				cmd:  junctionsCmd,
				args: []string{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args.cmd.Run(tt.args.cmd, tt.args.args)

			if _, err := os.Stat(out); err != nil {
				t.Errorf("junctions run wrote no output: %v", err)
			}
		})
	}
}
