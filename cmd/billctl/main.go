package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/transport"
)

type options struct {
	Addr    string        `long:"addr" env:"BILLCTL_ADDR" description:"control API addr of the node" default:"localhost:1909"`
	Timeout time.Duration `long:"timeout" env:"BILLCTL_TIMEOUT" description:"request timeout" default:"2m"`
}

var opts options

type issueCommand struct {
	DraweeFile                string `long:"drawee" description:"JSON identity of the drawee" required:"true"`
	PayeeFile                 string `long:"payee" description:"JSON identity of the payee"`
	Jurisdiction              string `long:"jurisdiction" description:"jurisdiction"`
	PlaceOfDrawing            string `long:"place-of-drawing" description:"place of drawing"`
	PlaceOfPayment            string `long:"place-of-payment" description:"place of payment"`
	Amount                    uint64 `long:"amount" description:"amount in sat" required:"true"`
	MaturityDate              string `long:"maturity-date" description:"maturity date (YYYY-MM-DD)"`
	CompoundingInterestRate   uint64 `long:"interest-rate" description:"compounding interest rate"`
	TypeOfInterestCalculation bool   `long:"interest-calculation" description:"type of interest calculation"`
	Language                  string `long:"language" description:"language of the bill" default:"en"`
}

func (c *issueCommand) Execute([]string) error {
	drawee, err := readIdentity(c.DraweeFile)
	if err != nil {
		return err
	}
	req := transport.IssueRequest{
		Drawee:                    drawee,
		Jurisdiction:              c.Jurisdiction,
		PlaceOfDrawing:            c.PlaceOfDrawing,
		PlaceOfPayment:            c.PlaceOfPayment,
		Amount:                    c.Amount,
		MaturityDate:              c.MaturityDate,
		CompoundingInterestRate:   c.CompoundingInterestRate,
		TypeOfInterestCalculation: c.TypeOfInterestCalculation,
		Language:                  c.Language,
	}
	if c.PayeeFile != "" {
		if req.Payee, err = readIdentity(c.PayeeFile); err != nil {
			return err
		}
		req.ToPayee = true
	}
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		return client.Issue(ctx, req)
	})
}

type billArgs struct {
	Bill string `positional-arg-name:"bill" required:"true"`
}

type endorseCommand struct {
	EndorseeFile string   `long:"endorsee" description:"JSON identity of the endorsee" required:"true"`
	Args         billArgs `positional-args:"true"`
}

func (c *endorseCommand) Execute([]string) error {
	endorsee, err := readIdentity(c.EndorseeFile)
	if err != nil {
		return err
	}
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		return client.Endorse(ctx, c.Args.Bill, endorsee)
	})
}

type sellCommand struct {
	BuyerFile string   `long:"buyer" description:"JSON identity of the buyer" required:"true"`
	Amount    uint64   `long:"amount" description:"price in sat" required:"true"`
	Args      billArgs `positional-args:"true"`
}

func (c *sellCommand) Execute([]string) error {
	buyer, err := readIdentity(c.BuyerFile)
	if err != nil {
		return err
	}
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		return client.Sell(ctx, c.Args.Bill, buyer, c.Amount)
	})
}

type billCommand struct {
	Args billArgs `positional-args:"true"`
	run  func(ctx context.Context, client *transport.Client, bill string) (any, error)
}

func (c *billCommand) Execute([]string) error {
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		return c.run(ctx, client, c.Args.Bill)
	})
}

func blockCall(fn func(*transport.Client, context.Context, string) (model.Block, error)) func(context.Context, *transport.Client, string) (any, error) {
	return func(ctx context.Context, client *transport.Client, bill string) (any, error) {
		return fn(client, ctx, bill)
	}
}

type listCommand struct{}

func (listCommand) Execute([]string) error {
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		return client.ListBills(ctx)
	})
}

type syncCommand struct{}

func (syncCommand) Execute([]string) error {
	return call(func(ctx context.Context, client *transport.Client) (any, error) {
		imported, err := client.Sync(ctx)
		return map[string]int{"imported": imported}, err
	})
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	commands := []struct {
		name, short string
		data        any
	}{
		{"issue", "Issue a bill", &issueCommand{}},
		{"endorse", "Endorse a bill", &endorseCommand{}},
		{"sell", "Sell a bill", &sellCommand{}},
		{"accept", "Accept a bill as drawee", &billCommand{run: blockCall((*transport.Client).Accept)}},
		{"request-to-accept", "Ask the drawee to accept a bill", &billCommand{run: blockCall((*transport.Client).RequestToAccept)}},
		{"request-to-pay", "Ask the drawee to pay a bill", &billCommand{run: blockCall((*transport.Client).RequestToPay)}},
		{"show", "Show the state of a bill", &billCommand{run: func(ctx context.Context, client *transport.Client, bill string) (any, error) {
			return client.GetBill(ctx, bill)
		}}},
		{"list", "List bills held by the node", &listCommand{}},
		{"sync", "Sync the bill directory now", &syncCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, "", c.data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func call(fn func(ctx context.Context, client *transport.Client) (any, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	conn, err := transport.Dial(opts.Addr)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	result, err := fn(ctx, transport.NewClient(conn))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readIdentity(path string) (model.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Identity{}, fmt.Errorf("read identity: %w", err)
	}
	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return model.Identity{}, fmt.Errorf("decode identity %s: %w", path, err)
	}
	if identity.IsZero() {
		return model.Identity{}, fmt.Errorf("identity %s has no peer_id", path)
	}
	return identity, nil
}
