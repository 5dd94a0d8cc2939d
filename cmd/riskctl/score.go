package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/application/usecase"
	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/infrastructure/artifact"
	"github.com/bibbank/creditrisk/internal/infrastructure/kafka"
	"github.com/bibbank/creditrisk/internal/infrastructure/telemetry"
	grpcpresentation "github.com/bibbank/creditrisk/internal/presentation/grpc"
	"github.com/bibbank/creditrisk/pkg/tlsutil"
)

type scoreOptions struct {
	req        dto.ScoreApplicantRequest
	modelPath  string
	inPath     string
	server     string
	caFile     string
	serverName string
	timeout    time.Duration
}

func newScoreCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one applicant",
		Long: "Scores an applicant read from --in (a JSON request body) or from flags. " +
			"Scoring runs in-process against --model unless --server names a running service.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.inPath != "" {
				if err := readRequest(opts.inPath, &opts.req); err != nil {
					return err
				}
			}
			if opts.server != "" {
				return runRemoteScore(cmd, opts)
			}
			return runLocalScore(cmd, opts, logger(cmd))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.modelPath, "model", "m", "models/credit_risk_v1.json", "Path to the parameter artifact (JSON or YAML)")
	f.StringVarP(&opts.inPath, "in", "i", "", "Path to a JSON scoring request; overrides applicant flags")
	f.StringVar(&opts.server, "server", "", "Address of a running credit-risk-service gRPC endpoint")
	f.StringVar(&opts.caFile, "ca", "", "CA certificate for TLS to --server")
	f.StringVar(&opts.serverName, "server-name", "", "TLS server name override")
	f.DurationVar(&opts.timeout, "timeout", 5*time.Second, "Remote call timeout")

	f.StringVar(&opts.req.RequestID, "request-id", "", "Caller request id")
	f.IntVar(&opts.req.Age, "age", 0, "Applicant age in years")
	f.StringVar(&opts.req.Income, "income", "", "Annual income")
	f.StringVar(&opts.req.LoanAmount, "loan-amount", "", "Requested loan amount")
	f.IntVar(&opts.req.LoanTenureMonths, "tenure", 0, "Loan tenure in months")
	f.IntVar(&opts.req.AvgDPDPerDelinquency, "avg-dpd", 0, "Average days past due per delinquency")
	f.Float64Var(&opts.req.DelinquencyRatio, "delinquency-ratio", 0, "Delinquency ratio, percent")
	f.Float64Var(&opts.req.CreditUtilizationRatio, "utilization", 0, "Credit utilization ratio, percent")
	f.IntVar(&opts.req.NumberOfOpenAccounts, "open-accounts", 0, "Number of open loan accounts")
	f.StringVar(&opts.req.ResidenceType, "residence", "", "Residence type (Owned, Rented, Mortgage)")
	f.StringVar(&opts.req.LoanPurpose, "purpose", "", "Loan purpose (Education, Home, Auto, Personal)")
	f.StringVar(&opts.req.LoanType, "loan-type", "", "Loan type (Secured, Unsecured)")
	f.BoolVar(&opts.req.IncludeFeatures, "explain", false, "Include the encoded features and log-odds")

	return cmd
}

func readRequest(path string, req *dto.ScoreApplicantRequest) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	if err := json.Unmarshal(content, req); err != nil {
		return fmt.Errorf("failed to unmarshal request JSON: %w", err)
	}
	return nil
}

func runLocalScore(cmd *cobra.Command, opts scoreOptions, logger *slog.Logger) error {
	art, err := artifact.Load(opts.modelPath)
	if err != nil {
		return err
	}
	engine, err := service.NewScoringEngine(art.Parameters)
	if err != nil {
		return err
	}
	recorder, err := telemetry.NewScoreRecorder(otel.GetMeterProvider(), art.Parameters.ModelVersion())
	if err != nil {
		return err
	}

	uc := usecase.NewScoreApplicantUseCase(engine, kafka.NewDiscardPublisher(logger), recorder, logger)
	resp, err := uc.Execute(cmd.Context(), opts.req)
	if err != nil {
		return err
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return printJSONLine(cmd.OutOrStdout(), out)
}

func runRemoteScore(cmd *cobra.Command, opts scoreOptions) error {
	applicant, err := applicantMsg(opts.req)
	if err != nil {
		return err
	}

	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if opts.caFile != "" {
		c, err := tlsutil.ClientCredentials(opts.caFile, opts.serverName)
		if err != nil {
			return err
		}
		creds = c
	}

	conn, err := grpclib.NewClient(opts.server, grpclib.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("dial %s: %w", opts.server, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	resp, err := grpcpresentation.NewCreditRiskServiceClient(conn).ScoreApplicant(ctx, &grpcpresentation.ScoreApplicantRequest{
		RequestID:       opts.req.RequestID,
		IncludeFeatures: opts.req.IncludeFeatures,
		Applicant:       applicant,
	})
	if err != nil {
		return fmt.Errorf("score applicant: %w", err)
	}

	out, err := json.Marshal(resp.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return printJSONLine(cmd.OutOrStdout(), out)
}

// applicantMsg converts the request into its wire form. Integer fields that do
// not fit the int32 wire type are rejected instead of wrapping.
func applicantMsg(r dto.ScoreApplicantRequest) (*grpcpresentation.ApplicantMsg, error) {
	age, err := wireInt32("age", r.Age)
	if err != nil {
		return nil, err
	}
	tenure, err := wireInt32("loan_tenure_months", r.LoanTenureMonths)
	if err != nil {
		return nil, err
	}
	avgDPD, err := wireInt32("avg_dpd_per_delinquency", r.AvgDPDPerDelinquency)
	if err != nil {
		return nil, err
	}
	openAccounts, err := wireInt32("number_of_open_accounts", r.NumberOfOpenAccounts)
	if err != nil {
		return nil, err
	}

	return &grpcpresentation.ApplicantMsg{
		Age:                    age,
		Income:                 r.Income,
		LoanAmount:             r.LoanAmount,
		LoanTenureMonths:       tenure,
		AvgDPDPerDelinquency:   avgDPD,
		DelinquencyRatio:       r.DelinquencyRatio,
		CreditUtilizationRatio: r.CreditUtilizationRatio,
		NumberOfOpenAccounts:   openAccounts,
		ResidenceType:          r.ResidenceType,
		LoanPurpose:            r.LoanPurpose,
		LoanType:               r.LoanType,
	}, nil
}

func wireInt32(field string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &model.FieldError{Field: field, Reason: fmt.Sprintf("%d is out of range", v)}
	}
	return int32(v), nil
}
