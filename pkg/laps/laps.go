package laps

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"lapstats/pkg/model"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Load reads every lap file in order. The first line of a file is the race
// name, every other line is a driver code immediately followed by a lap
// time in seconds. Laps of all files are collected into one mapping.
func Load(paths []string) (model.RaceSet, error) {
	rs := model.RaceSet{
		Races: []string{},
		Laps:  model.NewLapData(),
	}
	for _, path := range paths {
		race, err := loadFile(path, rs.Laps)
		if err != nil {
			return model.RaceSet{}, err
		}
		rs.Races = append(rs.Races, race)
	}
	return rs, nil
}

func loadFile(path string, laps *model.LapData) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &model.MissingFileError{Path: path}
		}
		return "", errors.Wrapf(err, "opening lap file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrapf(err, "reading lap file %s", path)
		}
		return "", &model.MalformedLineError{Path: path, Line: 1, Reason: "missing race name"}
	}
	race := strings.TrimSpace(scanner.Text())

	count := 0
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		code, lapTime, err := parseLine(line)
		if err != nil {
			return "", &model.MalformedLineError{Path: path, Line: lineNo, Text: line, Reason: err.Error()}
		}
		laps.Append(code, lapTime)
		count++
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "reading lap file %s", path)
	}

	logrus.WithFields(logrus.Fields{"path": path, "race": race}).Debugf("loaded %d laps", count)
	return race, nil
}

func parseLine(line string) (string, float64, error) {
	runes := []rune(line)
	if len(runes) <= model.CodeLength {
		return "", 0, errors.New("missing lap time")
	}
	code := string(runes[:model.CodeLength])
	lapTime, err := strconv.ParseFloat(strings.TrimSpace(string(runes[model.CodeLength:])), 64)
	if err != nil {
		return "", 0, errors.New("invalid lap time")
	}
	if math.IsNaN(lapTime) || math.IsInf(lapTime, 0) {
		return "", 0, errors.New("lap time is not finite")
	}
	return code, lapTime, nil
}
