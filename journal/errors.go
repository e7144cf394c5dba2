package journal

const (
	errMsgNilOptions    = "Journal options are nil."
	errMsgInvalidOpts   = "Journal options are invalid."
	errMsgCreateDir     = "Failed to create journal directory."
	errMsgCreateFile    = "Failed to create journal file."
	errMsgDeriveKey     = "Failed to derive journal key."
	errMsgCipher        = "Failed to initialise journal cipher."
	errMsgEncodeRecord  = "Failed to encode journal record."
	errMsgWriteRecord   = "Failed to write journal record."
	errMsgClosed        = "Journal is closed."
	errMsgListLabels    = "Failed to list journal labels."
	errMsgListNames     = "Failed to list journal names."
	errMsgReadJournal   = "Failed to read journal file."
	errMsgMissingSecret = "Passphrase is required to read a journal."
)
