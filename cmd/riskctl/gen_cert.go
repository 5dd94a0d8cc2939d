package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibbank/creditrisk/pkg/tlsutil"
)

func newGenCertCmd() *cobra.Command {
	var (
		hosts    []string
		outDir   string
		validFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "gen-cert",
		Short: "Generate development TLS certificates",
		Long:  "Writes a throwaway CA and a server certificate usable with GRPC_TLS_CERT_FILE / GRPC_TLS_KEY_FILE and riskctl score --ca.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := tlsutil.GenerateDevCertificates(hosts, outDir, validFor)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ca:   %s\n", bundle.CAFile)
			fmt.Fprintf(w, "cert: %s\n", bundle.CertFile)
			fmt.Fprintf(w, "key:  %s\n", bundle.KeyFile)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs for the server certificate")
	f.StringVarP(&outDir, "out", "o", "certs", "Output directory")
	f.DurationVar(&validFor, "valid-for", 30*24*time.Hour, "Certificate lifetime")
	return cmd
}
