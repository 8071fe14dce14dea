package services

import (
	"polemica/internal/db"
	"polemica/internal/models"
)

// BinaryTally is the fixed aggregate for YES_NO topics. All-zero is the valid
// empty state; absence of rows is not distinguished from zero votes.
type BinaryTally struct {
	Sim     int64 `json:"SIM"`
	Nao     int64 `json:"NAO"`
	Depende int64 `json:"DEPENDE"`
	Total   int64 `json:"total"`
}

// MultiTally maps option ids to vote counts. Only options with at least one
// vote appear; callers default missing keys to zero.
type MultiTally struct {
	Options    map[uint]int64 `json:"options"`
	TotalVotes int64          `json:"totalVotes"`
}

// TallyBinary counts the singleton binary votes of a topic, grouped by value.
// Always computed fresh from topic_votes, never cached.
func TallyBinary(topicID uint) (*BinaryTally, error) {
	type countRow struct {
		Vote  string
		Count int64
	}
	var rows []countRow
	err := db.DB.Model(&models.TopicVote{}).
		Select("vote, COUNT(*) as count").
		Where("topic_id = ? AND option_id IS NULL", topicID).
		Group("vote").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tally := &BinaryTally{}
	for _, r := range rows {
		switch r.Vote {
		case models.VoteSim:
			tally.Sim = r.Count
		case models.VoteNao:
			tally.Nao = r.Count
		case models.VoteDepende:
			tally.Depende = r.Count
		}
		tally.Total += r.Count
	}
	return tally, nil
}

// TallyMulti counts per-option votes of a MULTI_CHOICE topic.
func TallyMulti(topicID uint) (*MultiTally, error) {
	type countRow struct {
		OptionID uint
		Count    int64
	}
	var rows []countRow
	err := db.DB.Model(&models.TopicVote{}).
		Select("option_id, COUNT(*) as count").
		Where("topic_id = ? AND option_id IS NOT NULL", topicID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tally := &MultiTally{Options: make(map[uint]int64)}
	for _, r := range rows {
		tally.Options[r.OptionID] = r.Count
		tally.TotalVotes += r.Count
	}
	return tally, nil
}

// TallyTopic dispatches on the topic type, the sole authority on which vote
// representation is valid.
func TallyTopic(topic *models.Topic) (interface{}, error) {
	if topic.IsMulti() {
		return TallyMulti(topic.ID)
	}
	return TallyBinary(topic.ID)
}
