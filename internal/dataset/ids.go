package dataset

import "github.com/google/uuid"

// newParticipantID is swapped in tests that need stable IDs.
var newParticipantID = uuid.New
