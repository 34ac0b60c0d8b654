package extract

// transactionPrompt is the contract between the ingestion pipeline and the
// model. The {msg} placeholder is replaced with the email body; the reply
// must carry the fields inside a single ```json fenced block.
const transactionPrompt = "You are a transaction email parser.\n\n" +
	"Task:\n" +
	"- Read the transaction notification email below.\n" +
	"- Extract the transaction details into a single JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"recipientName\": string, the account holder or recipient the email addresses\n" +
	"- \"amount\": string, the transaction amount exactly as written, including the currency symbol\n" +
	"- \"transactionType\": string, e.g. \"credit\", \"debit\", \"online payment\"\n" +
	"- \"paymentMethod\": string, e.g. \"Bank transfer\", \"Card\", \"USSD\"\n" +
	"- \"date\": string, the transaction date exactly as written\n" +
	"- \"merchant\": string, the counterparty or merchant name\n" +
	"- \"category\": string, a short spending category such as \"Food\" or \"Transport\"\n" +
	"- \"description\": string, a one-line summary of the transaction\n\n" +
	"Rules:\n" +
	"- Use null for any field the email does not mention.\n" +
	"- Do not invent values.\n" +
	"- Return the JSON object inside a ```json code fence and nothing else.\n\n" +
	"Email:\n" +
	"{msg}\n"
