package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// Client implements ChainService over a Solana JSON-RPC node.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
}

// Compile-time interface check.
var _ ChainService = (*Client)(nil)

// NewClient creates a ChainService for the node at rpcURL. Reads and
// preflight checks use confirmed commitment.
func NewClient(rpcURL string) *Client {
	return &Client{
		rpc:        rpc.New(rpcURL),
		commitment: rpc.CommitmentConfirmed,
	}
}

// LatestBlockhash fetches a recent blockhash at confirmed commitment.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("%w: latest blockhash: %w", ErrConnectionFailed, err)
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, fmt.Errorf("%w: empty blockhash result", ErrInvalidResponse)
	}
	return out.Value.Blockhash, nil
}

// SendTransaction broadcasts a signed transaction. Preflight failures from
// the program surface as *ProgramError; other rejections wrap
// ErrSubmissionFailed.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		if perr := programErrFromRPC(err); perr != nil {
			return solana.Signature{}, perr
		}
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	return sig, nil
}

// SignatureStatus queries the confirmation status of a signature, searching
// transaction history so post-timeout probes still find the transaction.
func (c *Client) SignatureStatus(ctx context.Context, sig solana.Signature) (*SignatureStatus, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("%w: signature status: %w", ErrConnectionFailed, err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return nil, nil
	}
	st := out.Value[0]
	return &SignatureStatus{
		Slot: st.Slot,
		Confirmed: st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			st.ConfirmationStatus == rpc.ConfirmationStatusFinalized,
		Err: parseTransactionErr(st.Err),
	}, nil
}

// Balance returns the lamport balance of an account.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("%w: balance of %s: %w", ErrConnectionFailed, account, err)
	}
	return out.Value, nil
}

// AccountData returns the raw data of an account.
func (c *Client) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	out, err := c.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
		}
		return nil, fmt.Errorf("%w: account %s: %w", ErrConnectionFailed, account, err)
	}
	if out == nil || out.Value == nil || out.Value.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return out.Value.Data.GetBinary(), nil
}

// RecentSignatures lists recent transaction signatures for an account.
func (c *Client) RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]solana.Signature, error) {
	out, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, account, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: signatures for %s: %w", ErrConnectionFailed, account, err)
	}
	sigs := make([]solana.Signature, 0, len(out))
	for _, entry := range out {
		sigs = append(sigs, entry.Signature)
	}
	return sigs, nil
}

// programErrFromRPC extracts a SoDap program error from an RPC rejection, or
// returns nil if the error carries no custom program code.
func programErrFromRPC(err error) *ProgramError {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return nil
	}
	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return nil
	}
	if perr, ok := parseTransactionErr(data["err"]).(*ProgramError); ok {
		return perr
	}
	return nil
}
