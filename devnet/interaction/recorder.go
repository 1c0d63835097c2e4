package interaction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Recorder persists the ordered outcome log of interaction batches as JSON files. Persistence is best-effort
// telemetry: callers log persistence errors rather than failing a batch on them.
type Recorder struct {
	// directory describes the directory batch result files are written into.
	directory string

	// logger describes the Recorder's log object that can be used to log important events
	logger *logging.Logger
}

// NewRecorder creates a Recorder which writes batch results into the provided directory.
func NewRecorder(directory string) *Recorder {
	return &Recorder{
		directory: directory,
		logger:    logging.GlobalLogger.NewSubLogger("module", "recorder"),
	}
}

// Persist writes the provided batch result keyed by wallet/contract address prefixes and a timestamp, so files are
// never overwritten across runs. Returns the path the result was written to, or an error if one occurred.
func (r *Recorder) Persist(result *BatchResult, walletAddress common.Address, contractAddress common.Address) (string, error) {
	if err := utils.MakeDirectory(r.directory); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("interactions_%s_%s_%d.json",
		addressPrefix(walletAddress), addressPrefix(contractAddress), time.Now().Unix())
	filePath := filepath.Join(r.directory, fileName)

	// If a file for this second already exists, disambiguate rather than overwrite.
	if utils.FileExists(filePath) {
		fileName = fmt.Sprintf("interactions_%s_%s_%d_%s.json",
			addressPrefix(walletAddress), addressPrefix(contractAddress), time.Now().Unix(), uuid.NewString()[:8])
		filePath = filepath.Join(r.directory, fileName)
	}

	b, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return "", errors.WithStack(err)
	}

	if err = os.WriteFile(filePath, b, 0644); err != nil {
		return "", errors.WithStack(err)
	}

	r.logger.Info("persisted ", len(result.Results), " interaction outcomes to ", filePath)
	return filePath, nil
}

// addressPrefix returns the short hex prefix of an address used in result file names.
func addressPrefix(address common.Address) string {
	return address.Hex()[2:10]
}
