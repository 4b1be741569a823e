/*
Package dialog implements the node abstraction of the kompis conversation
graph: the shared node contract, the closed set of node variants, the
registry they live in, and the loader that builds declarative nodes from
conversation files.

# Node Variants

  - TopicPredictNode: computational, never renders; classifies free text.
  - TopicConfirmNode: fixed choice set {good_answer, bad_answer}.
  - FeedbackNode: fixed choice set {bad, normal, good}_conversation.
  - OptionNode: data-driven branching, fully described by a definition record.
  - PostalLookupNode: data-driven postal-code → municipality branching.

Nodes are immutable after construction. All per-conversation mutable state
lives in the domain.Session, whose attribute bag is the only cross-node
communication channel.
*/
package dialog
