package answer

const standardSystemPrompt = `You are a helpful assistant that answers questions about a user-supplied document collection.
Answer using the supplied context passages and the conversation so far.
If the context does not contain the information needed, say that no relevant information was found in the documents instead of guessing.`

const mapPrompt = `Summarize the following passage concisely, keeping every concrete fact, name, number, and date:

%s`

const reducePrompt = `Combine the following partial summaries into one coherent summary. Do not add information that is not in them:

%s`

const deepAnswerPrompt = `You are an expert assistant. Use this summary to answer:

%s

Question: %s
Answer:`
