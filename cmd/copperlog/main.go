// Command copperlog lists and decrypts journals written by the journal sink.
//
//	copperlog labels -dir DIR
//	copperlog names  -dir DIR -label LABEL
//	copperlog read   -dir DIR -label LABEL -name NAME -pass SECRET [-device ID]
//	copperlog demo   -dir DIR -pass SECRET [-device ID] [-config FILE -wd DIR]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/copper-debug/logging"
	"github.com/copper-debug/logging/journal"
	"github.com/rs/zerolog"
)

const usage = "usage: copperlog <labels|names|read|demo> [flags]"

func main() {
	diag := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		diag.Error().Err(err).Msg("copperlog failed")
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	const op errors.Op = "copperlog.run"
	if len(args) == 0 {
		return errors.New(op).Msg(usage)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "journals", "journal root directory")
	label := fs.String("label", logging.DefaultLabel, "journal label")
	name := fs.String("name", "", "journal name, as printed by names")
	pass := fs.String("pass", os.Getenv("COPPERLOG_PASSPHRASE"), "journal passphrase")
	device := fs.String("device", "", "device identifier used when the journal was written")
	configPath := fs.String("config", "", "logging config file for demo")
	wd := fs.String("wd", ".", "working directory for file logging in demo")
	if err := fs.Parse(args[1:]); err != nil {
		return errors.New(op).Err(err).Msg("invalid flags")
	}

	r := journal.Reader{Dir: *dir, Passphrase: *pass, DeviceID: *device}

	switch args[0] {
	case "labels":
		labels, err := r.Labels()
		if err != nil {
			return err
		}
		for _, l := range labels {
			fmt.Fprintln(stdout, l)
		}
	case "names":
		names, err := r.Names(*label)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(stdout, n.Name)
		}
	case "read":
		if *name == "" {
			return errors.New(op).Msg("-name is required")
		}
		records, err := r.Read(*label, *name)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Fprintln(stdout, rec.Pretty())
		}
	case "demo":
		return demo(demoOptions{
			dir:        *dir,
			label:      *label,
			pass:       *pass,
			device:     *device,
			configPath: *configPath,
			wd:         *wd,
		}, stdout, stderr)
	default:
		return errors.New(op).Msg(usage)
	}
	return nil
}

type demoOptions struct {
	dir, label, pass, device string
	configPath, wd           string
}

// demo writes one record per severity to the console service, a new journal
// and stdout.
func demo(opts demoOptions, stdout, stderr io.Writer) error {
	const op errors.Op = "copperlog.demo"

	cfg := logging.DefaultConfig()
	cfg.Level = logging.SeverityTrace.String()
	cfg.ConsoleNoColor = true
	if opts.configPath != "" {
		loaded, err := logging.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	svc := logging.NewService(opts.wd, &cfg)
	svc.Console = stderr
	if err := svc.Initialize(); err != nil {
		return err
	}
	defer svc.Close()

	var journalErr error
	j, err := journal.Open(journal.Options{
		Dir:        opts.dir,
		Label:      opts.label,
		Passphrase: opts.pass,
		DeviceID:   opts.device,
		OnError: func(err error) {
			if journalErr == nil {
				journalErr = err
			}
		},
	})
	if err != nil {
		return err
	}

	log := logging.New(logging.MultiSink(svc, j, logging.NewPrettySink(stdout)), logging.WithLabel(opts.label))
	log.Tracef("entering %s", "demo")
	log.Debugf("journal at %s", j.Path())
	log.Infof("writing %d severities", len(logging.Severities()))
	log.NoticeWith("session started", logging.Metadata{"name": j.Name()})
	log.WarningWith("disk nearly full", logging.Metadata{"free_mb": 512})
	log.ErrorWith("upload failed", logging.Metadata{"err": errors.New(op).Msg("connection reset")})
	log.Criticalf("demo complete")

	if err = j.Close(); err != nil {
		return err
	}
	if journalErr != nil {
		return journalErr
	}
	fmt.Fprintf(stdout, "journal %s/%s written\n", j.Label(), j.Name())
	return nil
}
