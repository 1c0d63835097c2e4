package wallet

import (
	"path/filepath"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/utils"
	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// walletsBucket describes the bucket wallet records are stored under.
var walletsBucket = []byte("wallets")

// Record describes the persisted state of a wallet across runs: its key, funding status and the contract deployed
// for it. Records are what allow later runs to resume in interaction-only mode.
type Record struct {
	// Address describes the wallet's hex-encoded address, which also keys the record.
	Address string `cbor:"address"`

	// PrivateKey describes the wallet's hex-encoded private key.
	PrivateKey string `cbor:"privateKey"`

	// Funded describes whether the wallet has been successfully funded through the faucet.
	Funded bool `cbor:"funded"`

	// ContractName describes the name of the contract deployed for this wallet, if any.
	ContractName string `cbor:"contractName"`

	// ContractAddress describes the hex-encoded address of the contract deployed for this wallet, if any.
	ContractAddress string `cbor:"contractAddress"`

	// ContractABI describes the JSON-encoded interface of the deployed contract, if any.
	ContractABI string `cbor:"contractAbi"`

	// UpdatedAt describes when the record was last written.
	UpdatedAt time.Time `cbor:"updatedAt"`
}

// Store persists wallet records to disk so runs can resume against previously funded wallets and their deployed
// contracts. It is backed by a bbolt database with CBOR-encoded records.
type Store struct {
	// db describes the underlying bbolt database.
	db *bolt.DB
}

// OpenStore opens (or creates) the wallet store at the provided path. Returns the store, or an error if one occurs.
func OpenStore(path string) (*Store, error) {
	// Make the parent directory, if it does not exist already.
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.MakeDirectory(dir); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Create the default bucket if it doesn't exist.
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}

	return &Store{db: db}, nil
}

// Put writes a wallet record, keyed by its address. The record's UpdatedAt timestamp is refreshed.
// Returns an error if one occurred.
func (s *Store) Put(record *Record) error {
	record.UpdatedAt = time.Now().UTC()
	serialized, err := cbor.Marshal(record, cbor.EncOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletsBucket).Put([]byte(record.Address), serialized)
	})
	return errors.WithStack(err)
}

// Get reads the wallet record stored under the provided hex address. Returns the record and whether it existed,
// or an error if one occurred.
func (s *Store) Get(address string) (*Record, bool, error) {
	var record *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(walletsBucket).Get([]byte(address))
		if data == nil {
			return nil
		}
		record = &Record{}
		return cbor.Unmarshal(data, record)
	})
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return record, record != nil, nil
}

// All reads every stored wallet record, in key order. Returns the records, or an error if one occurred.
func (s *Store) All() ([]*Record, error) {
	records := make([]*Record, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(walletsBucket).ForEach(func(k []byte, v []byte) error {
			record := &Record{}
			if err := cbor.Unmarshal(v, record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
