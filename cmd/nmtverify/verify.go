package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/celestiaorg/nmtproof"
	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
)

// check is the decoded input of the range and namespace commands.
type check struct {
	cfg       config
	log       zerolog.Logger
	proof     nmtproof.NamespaceProof
	root      nmtproof.NamespacedHash
	nID       namespace.ID
	rawLeaves [][]byte
}

func runRange(c *cli.Context) error {
	chk, err := loadCheck(c)
	if err != nil {
		return err
	}
	hasher := nmtproof.DefaultNmtHasher(chk.cfg.namespaceSize())
	err = chk.proof.VerifyRange(hasher, chk.root, chk.rawLeaves, chk.nID)
	return chk.report(c, "range", err)
}

func runNamespace(c *cli.Context) error {
	chk, err := loadCheck(c)
	if err != nil {
		return err
	}
	hasher := nmtproof.DefaultNmtHasher(chk.cfg.namespaceSize())
	err = chk.proof.VerifyCompleteNamespace(hasher, chk.root, chk.rawLeaves, chk.nID)
	return chk.report(c, "namespace", err)
}

func runInspect(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	proof, err := readProof(c.String("proof"), cfg)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "kind: %s\n", kindOf(&proof))
	fmt.Fprintf(out, "range: [%d, %d)\n", proof.Start(), proof.End())
	fmt.Fprintf(out, "max namespace ignored: %v\n", proof.IsMaxNamespaceIgnored())
	fmt.Fprintf(out, "siblings: %d\n", len(proof.Siblings()))
	for i, sibling := range proof.Siblings() {
		fmt.Fprintf(out, "  %d: %x..%x %x\n", i, []byte(sibling.Min()), []byte(sibling.Max()), sibling.Hash())
	}
	if left, ok := proof.RightmostLeftSibling(); ok {
		fmt.Fprintf(out, "left boundary max: %x\n", []byte(left.Max()))
	}
	if right, ok := proof.LeftmostRightSibling(); ok {
		fmt.Fprintf(out, "right boundary min: %x\n", []byte(right.Min()))
	}
	if leaf, ok := proof.Leaf(); ok {
		fmt.Fprintf(out, "leaf: %x\n", leaf.Bytes())
	}
	return nil
}

func loadCheck(c *cli.Context) (check, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return check{}, err
	}
	chk := check{
		cfg: cfg,
		log: newLogger(c.App.ErrWriter, cfg.LogLevel),
	}

	chk.proof, err = readProof(c.String("proof"), cfg)
	if err != nil {
		return check{}, err
	}

	rootBytes, err := hex.DecodeString(c.String("root"))
	if err != nil {
		return check{}, xerrors.Errorf("invalid root: %v", err)
	}
	chk.root, err = nmtproof.NamespacedHashFromBytes(cfg.namespaceSize(), rootBytes)
	if err != nil {
		return check{}, xerrors.Errorf("invalid root: %w", err)
	}

	chk.nID, err = namespace.IDFromHex(c.String("namespace"))
	if err != nil {
		return check{}, err
	}

	for i, leaf := range c.StringSlice("leaf") {
		data, err := hex.DecodeString(leaf)
		if err != nil {
			return check{}, xerrors.Errorf("invalid leaf %d: %v", i, err)
		}
		chk.rawLeaves = append(chk.rawLeaves, data)
	}

	chk.log.Debug().
		Str("proof", chk.proof.String()).
		Int("leaves", len(chk.rawLeaves)).
		Str("namespace", chk.nID.String()).
		Msg("loaded input")
	return chk, nil
}

// report logs the outcome of a verification and turns a rejection into the
// command's error.
func (chk check) report(c *cli.Context, what string, err error) error {
	event := chk.log.Info()
	if err != nil {
		event = chk.log.Warn().Err(err).Str("reason", category(err))
	}
	event.
		Str("check", what).
		Str("kind", kindOf(&chk.proof)).
		Uint32("start", chk.proof.Start()).
		Uint32("end", chk.proof.End()).
		Bool("valid", err == nil).
		Msg("verified proof")

	if err != nil {
		return xerrors.Errorf("proof rejected: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "OK")
	return nil
}

func readProof(path string, cfg config) (nmtproof.NamespaceProof, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nmtproof.NamespaceProof{}, xerrors.Errorf("failed to read proof: %v", err)
	}

	var proof nmtproof.NamespaceProof
	switch cfg.Format {
	case formatProto:
		proof, err = nmtproof.UnmarshalNamespaceProof(buf, cfg.namespaceSize())
	default:
		proof, err = nmtproof.UnmarshalNamespaceProofJSON(buf, cfg.namespaceSize())
	}
	if err != nil {
		return nmtproof.NamespaceProof{}, xerrors.Errorf("failed to decode proof: %w", err)
	}
	return proof, nil
}

func kindOf(proof *nmtproof.NamespaceProof) string {
	if proof.IsOfAbsence() {
		return "absence"
	}
	return "presence"
}

// category names the class of a verification error for the logs.
func category(err error) string {
	switch {
	case errors.Is(err, merkle.ErrInvalidRoot):
		return "invalid root"
	case errors.Is(err, merkle.ErrWrongAmountOfLeavesProvided):
		return "wrong amount of leaves"
	case errors.Is(err, merkle.ErrMissingLeaf):
		return "missing leaf"
	case errors.Is(err, merkle.ErrTreeDoesNotContainLeaf):
		return "namespace not in tree"
	case errors.Is(err, merkle.ErrNoLeavesProvided):
		return "no leaves"
	case errors.Is(err, nmtproof.ErrMismatchedNamespaceSize):
		return "namespace size"
	case errors.Is(err, merkle.ErrMalformedProof):
		return "malformed proof"
	default:
		return "other"
	}
}
