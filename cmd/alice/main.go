// Command alice encrypts two private 32-bit integers plus a zero carry
// bit-by-bit and writes the resulting record file for the evaluating
// party. The defaults reproduce the reference flow.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bitfhe/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "alice:", err)
		os.Exit(1)
	}
}

func run() error {
	def := client.DefaultConfig()

	lambda := flag.Int("lambda", def.SecurityLevel, "minimum security level in bits")
	seedStr := flag.String("seed", "314,1592,657", "comma-separated seed words for key generation")
	a := flag.Int("a", int(def.OperandA), "first private operand (int32)")
	b := flag.Int("b", int(def.OperandB), "second private operand (int32)")
	keyPath := flag.String("key", def.SecretKeyPath, "secret key file")
	cloudKeyPath := flag.String("cloud-key", def.CloudKeyPath, "cloud key file")
	outPath := flag.String("out", def.TransportOutPath, "transport record file")
	exportCloudKey := flag.Bool("export-cloud-key", false, "derive and write the cloud key")
	loadKey := flag.Bool("load-key", false, "load the secret key from -key instead of generating one")
	flag.Parse()

	seed, err := parseSeed(*seedStr)
	if err != nil {
		return err
	}

	cfg := client.Config{
		SecurityLevel:    *lambda,
		Seed:             seed,
		OperandA:         int32(*a),
		OperandB:         int32(*b),
		KeyMode:          client.KeyGenerate,
		SecretKeyPath:    *keyPath,
		CloudKeyPath:     *cloudKeyPath,
		ExportCloudKey:   *exportCloudKey,
		TransportOutPath: *outPath,
	}
	if *loadKey {
		cfg.KeyMode = client.KeyLoad
	}

	fmt.Println("Hi there! Today, I will ask the cloud the calculation results of the two data you input.")

	session := client.NewSession(cfg)
	if err := session.Run(); err != nil {
		return err
	}

	params := session.Params()
	fmt.Printf("parameters: lambda=%d n=%d q=%d\n", params.SecurityLevel(), params.N(), params.Q())
	for _, t := range session.Timings() {
		fmt.Printf("%-18s %s\n", t.Phase, t.Elapsed)
	}
	fmt.Printf("transport record written to %s\n", cfg.TransportOutPath)
	return nil
}

func parseSeed(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	seed := make([]uint32, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid seed word %q: %w", p, err)
		}
		seed = append(seed, uint32(w))
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("empty seed")
	}
	return seed, nil
}
