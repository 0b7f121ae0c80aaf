package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	reru "github.com/wesleyorama2/reru/http"
	"github.com/wesleyorama2/reru/internal/output"
	"github.com/wesleyorama2/reru/internal/stats"
	"github.com/wesleyorama2/reru/pkg/jsonpath"
	"github.com/wesleyorama2/reru/pkg/jsonschema"
)

// ErrSchemaMismatch is returned when the response body fails --schema validation.
var ErrSchemaMismatch = errors.New("response does not match schema")

// execute sends the request produced by build eo.repeat times and prints the
// last response. build is called once per send because a sent request
// cannot be reused.
func execute(ctx context.Context, stdout, stderr io.Writer, build func() (*reru.Request, error), eo execOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	formatter, err := eo.formatter(stdout)
	if err != nil {
		return err
	}

	var schema *jsonschema.Schema
	if eo.schema != "" {
		raw, err := os.ReadFile(eo.schema)
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
		if schema, err = jsonschema.Compile(raw); err != nil {
			return err
		}
	}

	var clientOpts []reru.ClientOption
	clientOpts = append(clientOpts, reru.WithTimeout(eo.timeout))
	if eo.insecure {
		clientOpts = append(clientOpts, reru.WithInsecureSkipVerify())
	}
	client := reru.NewClient(clientOpts...)

	repeat := eo.repeat
	if repeat < 1 {
		repeat = 1
	}

	recorder := stats.NewLatencyRecorder()
	var (
		lastResp *reru.Response
		lastBody []byte
		lastErr  error
	)

	for i := 0; i < repeat; i++ {
		req, err := build()
		if err != nil {
			return err
		}
		if i == 0 {
			fmt.Fprint(stdout, formatter.FormatRequest(output.NewRequestData(req)))
		}

		resp, body, err := send(ctx, req, client)
		if err != nil {
			if repeat == 1 {
				return err
			}
			recorder.RecordError()
			lastErr = err
			fmt.Fprintf(stderr, "%s request %d: %v\n", output.ErrorIcon(true), i+1, err)
			continue
		}

		recorder.Record(resp.Elapsed(), !resp.IsError())
		lastResp, lastBody = resp, body
	}

	if lastResp == nil {
		return fmt.Errorf("all %d requests failed: %w", repeat, lastErr)
	}

	data := output.NewResponseData(lastResp, lastBody)

	var extractErr error
	if eo.extract != "" {
		value, err := jsonpath.ExtractBytes(lastBody, eo.extract)
		if err != nil {
			extractErr = fmt.Errorf("extract %s: %w", eo.extract, err)
		} else {
			data.Extracted = &value
		}
	}

	var schemaErr error
	if schema != nil {
		if errs := schema.Validate(lastBody); len(errs) > 0 {
			for _, e := range errs {
				data.SchemaErrors = append(data.SchemaErrors, e.Error())
			}
			schemaErr = fmt.Errorf("%w: %v", ErrSchemaMismatch, errs)
		}
	}

	fmt.Fprint(stdout, formatter.FormatResponse(data))
	if repeat > 1 {
		fmt.Fprint(stdout, formatter.FormatSummary(recorder.Summary()))
	}

	return errors.Join(extractErr, schemaErr)
}

// send executes req and reads the whole body.
func send(ctx context.Context, req *reru.Request, client reru.Transport) (*reru.Response, []byte, error) {
	resp, err := req.SendWith(ctx, client)
	if err != nil {
		return nil, nil, err
	}
	body, err := resp.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, body, nil
}
