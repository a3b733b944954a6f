package respond_reschedule

// RespondRequest HTTP request model
type RespondRequest struct {
	Decision        string  `json:"decision"` // accept или reject
	ResponseMessage *string `json:"responseMessage,omitempty"`
	RespondedBy     *string `json:"respondedBy,omitempty"`
}
