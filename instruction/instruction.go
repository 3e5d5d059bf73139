// Package instruction builds the unsigned SoDap program instructions. Each
// builder validates its typed arguments, assembles the ordered account list
// the on-chain program expects, and borsh-encodes the argument payload behind
// the instruction's 8-byte Anchor discriminator.
//
// Builders are pure: they touch neither the network nor local storage.
package instruction

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MaxCartProducts is the program's per-purchase product limit.
const MaxCartProducts = 10

// Instruction is an unsigned instruction payload targeting the SoDap program.
// It satisfies solana.Instruction and can be placed directly into a transaction.
type Instruction struct {
	programID solana.PublicKey
	accounts  solana.AccountMetaSlice
	data      []byte
}

var _ solana.Instruction = (*Instruction)(nil)

// ProgramID returns the target program.
func (i *Instruction) ProgramID() solana.PublicKey { return i.programID }

// Accounts returns the ordered account list.
func (i *Instruction) Accounts() []*solana.AccountMeta { return i.accounts }

// Data returns the discriminator-prefixed borsh payload.
func (i *Instruction) Data() ([]byte, error) { return i.data, nil }

// discriminator computes the Anchor instruction discriminator:
// sha256("global:" + name)[:8].
func discriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// encodeArgs borsh-encodes args behind the named instruction's discriminator.
// A nil args value encodes the discriminator alone.
func encodeArgs(name string, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator(name))
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("instruction: encode %s args: %w", name, err)
		}
	}
	return buf.Bytes(), nil
}

func newInstruction(programID solana.PublicKey, accounts solana.AccountMetaSlice, name string, args interface{}) (*Instruction, error) {
	data, err := encodeArgs(name, args)
	if err != nil {
		return nil, err
	}
	return &Instruction{programID: programID, accounts: accounts, data: data}, nil
}
