package roster

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"lapstats/pkg/model"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const fieldCount = 4

// Load reads a roster file where every line is car_number,code,name,team.
// A line that cannot be parsed fails the whole load.
func Load(path string) (*model.Drivers, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &model.MissingFileError{Path: path}
		}
		return nil, errors.Wrapf(err, "opening roster %s", path)
	}
	defer f.Close()

	drivers := model.NewDrivers()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		code, record, err := parseLine(line)
		if err != nil {
			return nil, &model.MalformedLineError{Path: path, Line: lineNo, Text: line, Reason: err.Error()}
		}
		drivers.Set(code, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading roster %s", path)
	}

	logrus.WithField("path", path).Debugf("loaded %d drivers", drivers.Len())
	return drivers, nil
}

func parseLine(line string) (string, *model.DriverRecord, error) {
	parts := strings.Split(line, ",")
	if len(parts) != fieldCount {
		return "", nil, errors.Errorf("expected %d fields, got %d", fieldCount, len(parts))
	}
	carNumber, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", nil, errors.Errorf("invalid car number %q", parts[0])
	}
	return parts[1], &model.DriverRecord{
		CarNumber: &carNumber,
		Name:      parts[2],
		Team:      parts[3],
	}, nil
}
