package domain

import "errors"

var (
	ErrElectionNotFound     = errors.New("election not found")
	ErrPositionNotFound     = errors.New("position not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrPartylistNotFound    = errors.New("partylist not found")
	ErrVoterNotFound        = errors.New("voter not found")
	ErrCommissionerNotFound = errors.New("commissioner not found")
	ErrUserNotFound         = errors.New("user not found")

	ErrElectionNotOngoing = errors.New("election is not ongoing")
	ErrAlreadyVoted       = errors.New("you have already voted in this election")
	ErrNotAVoter          = errors.New("you are not a voter in this election")
	ErrNotACommissioner   = errors.New("you are not a commissioner of this election")
	ErrNotTheCreator      = errors.New("only the election creator can do this")
	ErrElectionNotVisible = errors.New("election is not visible to you")

	ErrSlugTaken           = errors.New("election slug is already taken")
	ErrVoterExists         = errors.New("voter email is already registered")
	ErrCommissionerExists  = errors.New("user is already a commissioner")
	ErrPartylistExists     = errors.New("partylist acronym is already taken")
	ErrCannotRemoveCreator = errors.New("the election creator cannot be removed")
	ErrReservedAcronym     = errors.New("acronym is reserved for independent candidates")
	ErrInvalidBallot       = errors.New("invalid ballot")
	ErrInvalidInput        = errors.New("invalid input")

	ErrInternal = errors.New("internal server error")
)
