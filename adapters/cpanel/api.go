package cpanel

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hostmaint/hostmaint/domain/model"
)

// number decodes YAML scalars that the APIs emit either quoted or bare.
type number float64

func (n *number) UnmarshalYAML(node *yaml.Node) error {
	v := strings.TrimSpace(node.Value)
	if v == "" || v == "~" || v == "null" || strings.EqualFold(v, "unlimited") {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("decode number %q: %w", v, err)
	}
	*n = number(f)
	return nil
}

type whmMetadata struct {
	Command string `yaml:"command"`
	Reason  string `yaml:"reason"`
	Result  int    `yaml:"result"`
}

type whmResponse[T any] struct {
	Data     T           `yaml:"data"`
	Metadata whmMetadata `yaml:"metadata"`
}

type uapiResponse[T any] struct {
	Result struct {
		Data   T        `yaml:"data"`
		Errors []string `yaml:"errors"`
		Status int      `yaml:"status"`
	} `yaml:"result"`
}

type cpapi2Response struct {
	CPanelResult struct {
		Error string `yaml:"error"`
		Event struct {
			Result int `yaml:"result"`
		} `yaml:"event"`
	} `yaml:"cpanelresult"`
}

func decode(line string, out []byte, v any) error {
	// dumpzone output carries tabs that are not valid YAML indentation
	out = bytes.ReplaceAll(out, []byte("\t"), nil)
	if err := yaml.Unmarshal(out, v); err != nil {
		return &model.CommandError{Command: line, Err: fmt.Errorf("decode output: %w", err)}
	}
	return nil
}

func rejected(line, reason string) error {
	return &model.CommandError{Command: line, Reason: reason, Err: model.ErrTransportRejected}
}

// whmapi1 runs a WHM API 1 function. Mutating calls honor dry-run; a
// suppressed call returns a nil response.
func whmapi1[T any](ctx context.Context, c *Client, mutating bool, fn string, params ...string) (*whmResponse[T], error) {
	args := append([]string{fn}, params...)
	line := commandLine("whmapi1", args)
	var out []byte
	var err error
	if mutating {
		var ran bool
		out, ran, err = c.mutate(ctx, "whmapi1", args...)
		if err == nil && !ran {
			return nil, nil
		}
	} else {
		out, err = c.exec(ctx, "whmapi1", args...)
	}
	if err != nil {
		return nil, err
	}
	var resp whmResponse[T]
	if err := decode(line, out, &resp); err != nil {
		return nil, err
	}
	if resp.Metadata.Result != 1 {
		return nil, rejected(line, resp.Metadata.Reason)
	}
	return &resp, nil
}

// uapi runs a UAPI function as user. UAPI calls used here only read state.
func uapi[T any](ctx context.Context, c *Client, user, module, fn string, params ...string) (*T, error) {
	args := append([]string{"--user=" + user, module, fn}, params...)
	line := commandLine("uapi", args)
	out, err := c.exec(ctx, "uapi", args...)
	if err != nil {
		return nil, err
	}
	var resp uapiResponse[T]
	if err := decode(line, out, &resp); err != nil {
		return nil, err
	}
	if resp.Result.Status != 1 {
		return nil, rejected(line, strings.Join(resp.Result.Errors, "; "))
	}
	return &resp.Result.Data, nil
}

// cpapi2 runs a mutating cPanel API 2 function as user.
func cpapi2(ctx context.Context, c *Client, user, module, fn string, params ...string) error {
	args := append([]string{"--user=" + user, module, fn}, params...)
	line := commandLine("cpapi2", args)
	out, ran, err := c.mutate(ctx, "cpapi2", args...)
	if err != nil || !ran {
		return err
	}
	var resp cpapi2Response
	if err := decode(line, out, &resp); err != nil {
		return err
	}
	if resp.CPanelResult.Event.Result != 1 || resp.CPanelResult.Error != "" {
		return rejected(line, resp.CPanelResult.Error)
	}
	return nil
}
