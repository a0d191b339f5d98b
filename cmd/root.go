package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration. The rule table is ordered: first match
// wins, so the textual special cases (SIRCREB before the generic debit cues,
// the rated IVA rules before the bare one) come first.
const defaultConfigYAML = `
sign_convention: credit_subtracts
tolerance: "0.01"
debit_suffix: "-"
rules:
  - name: balance_marker
    category: balance_marker
    match: 'SALDO AL \d{1,2}[/-]\d{1,2}[/-]\d{2,4}'
  - name: sircreb
    category: sircreb
    match: '\bSIRCREB\b'
  - name: dyc
    category: dyc
    match: '\bDY[ /]?C\b|DEUDA Y CREDITO|\bDGC\b'
  - name: debit_auto_api
    category: debit_auto_api
    match: '\bAPI\b'
  - name: debit_auto_arca
    category: debit_auto_arca
    match: '\bARCA\b'
  - name: vat_perception
    category: vat_perception
    match: 'PERCEPCION\s+IVA|PERCEP\.?\s*IVA'
  - name: vat_10_5
    category: vat_10_5
    match: '\bIVA\b'
    require: '10[,.]5'
  - name: vat_21
    category: vat_21
    match: '\bIVA\b'
    require: '\b21\b'
  - name: vat_other
    category: vat_other
    match: '\bIVA\b'
  - name: transfer_own_account
    category: transfer_own_account
    match: 'PROPIA|MISMA TITULARIDAD|ENTRE CUENTAS'
    capture: '\b\d{2}-?\d{8}-?\d\b'
  - name: transfer_received
    category: transfer_received
    match: '\bTRANSFEREN'
    require: 'RECIBID'
    capture: '\b\d{2}-?\d{8}-?\d\b'
  - name: transfer_sent
    category: transfer_sent
    match: '\bTRANSFEREN'
    require: 'REALIZAD'
    capture: '\b\d{2}-?\d{8}-?\d\b'
  - name: commission
    category: commission
    match: 'COMISION|GASTOS? BANCARIOS?'
  - name: debit_auto
    category: debit_auto
    match: 'SEGURO|PRIMA|DEBITO AUTOM'
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "resumen [filename]",
		Short: "Extract and classify bank statement movements",
		Long: `resumen extracts the movements of an Argentine bank statement,
classifies them (transfers, automatic debits, withholdings, commissions, VAT)
and reconciles the declared balances against the detected movements.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				handler(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.resumen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".resumen")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
