package iosource

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aladaia/vocan/internal/iofs"
	"github.com/aladaia/vocan/pkg/corpus"
	"gopkg.in/yaml.v3"
)

type storeYAML struct {
	corpus.Store `yaml:",inline"`
	Zone         string `yaml:"zone"`
}

type storesFile struct {
	Stores []storeYAML `yaml:"stores"`
}

func storesYAML(path string) ([]corpus.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	var sf storesFile
	if err = yaml.Unmarshal(data, &sf); err != nil {
		return nil, FormatError(path, err)
	}

	res := make([]corpus.Store, 0, len(sf.Stores))
	for i, v := range sf.Stores {
		st := v.Store
		st.StoreID = strings.TrimSpace(st.StoreID)
		if st.StoreID == "" {
			return nil, MalformedRowError(path, i+1,
				fmt.Errorf("store #%d: empty store_id", i+1))
		}
		st.Name = cleanText(st.Name)
		st.City = cleanText(st.City)
		st.Region = cleanText(st.Region)
		if st.Zone, err = parseZone(st.StoreID, v.Zone); err != nil {
			return nil, err
		}
		res = append(res, st)
	}

	slog.Info("Stores loaded", "path", path, "stores", len(res))
	return res, nil
}
