package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"checkers/game"

	"github.com/google/uuid"
)

// AgentConfig identifies one agent setup in an experiment. Search fields
// apply to MCTS agents only.
type AgentConfig struct {
	ID         int
	Kind       string // mcts, random, heuristic or qtable
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
	Evaluate   game.Evaluate
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing Black
	Agent2 int // AgentConfig.ID playing Red
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchupRecord summarises every game between two agents.
type MatchupRecord struct {
	Name       string
	Agent1     int
	Agent2     int
	Games      int
	Agent1Wins int
	Agent2Wins int
	Draws      int
}

// Agent1WinRate is the share of decisive games won by Agent1.
func (r MatchupRecord) Agent1WinRate() float64 {
	decisive := r.Agent1Wins + r.Agent2Wins
	if decisive == 0 {
		return 0
	}
	return float64(r.Agent1Wins) / float64(decisive)
}

// TrainingRecord is one training episode.
type TrainingRecord struct {
	Episode int
	Reward  float64
	Length  int
}

// EvaluationRecord is one periodic win rate measurement during training.
type EvaluationRecord struct {
	Episode     int
	VsRandom    float64
	VsHeuristic float64
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates root/name/<timestamp>-<run id> for the run's CSV files.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "total_moves", "truncated", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			strconv.Itoa(record.TotalMoves),
			strconv.FormatBool(record.Truncated),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "capture", "duration", "episodes", "full_playouts", "mean_playout_depth", "is_tree_reused"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.FormatBool(record.Capture),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.FormatFloat(record.MeanPlayoutDepth(), 'f', 2, 64),
			strconv.FormatBool(record.IsTreeReused),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteMatchups(records []MatchupRecord) error {
	header := []string{"name", "agent1", "agent2", "games", "agent1_wins", "agent2_wins", "draws", "agent1_win_rate"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Name,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Agent1Wins),
			strconv.Itoa(record.Agent2Wins),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.Agent1WinRate(), 'f', 3, 64),
		})
	}
	return w.write("matchups.csv", header, rows)
}

func (w *Writer) WriteTraining(records []TrainingRecord) error {
	header := []string{"episode", "reward", "length"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			strconv.Itoa(record.Length),
		})
	}
	return w.write("training.csv", header, rows)
}

func (w *Writer) WriteEvaluations(records []EvaluationRecord) error {
	header := []string{"episode", "win_rate_vs_random", "win_rate_vs_heuristic"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			strconv.FormatFloat(record.VsRandom, 'f', 3, 64),
			strconv.FormatFloat(record.VsHeuristic, 'f', 3, 64),
		})
	}
	return w.write("evaluations.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
